package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rbarros/cadastro/internal/customer/models"
)

// CustomerController defines the business logic interface the HTTP
// handlers invoke.
type CustomerController interface {
	CreateCustomer(ctx context.Context, draft models.CustomerDraft) (*models.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
	UpdateCustomer(ctx context.Context, update *models.CustomerUpdate) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}

// CustomerHandler maps HTTP requests onto a CustomerController.
type CustomerHandler struct {
	service CustomerController
	logger  *zap.Logger
}

// NewCustomerHandler constructs a new CustomerHandler with the given service and logger.
func NewCustomerHandler(service CustomerController, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		logger:  logger.Named("http_handler"),
	}
}

// AddressRequest mirrors the Address value object on the wire.
type AddressRequest struct {
	ZipCode      string `json:"zipCode"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// CreateCustomerRequest is the payload for POST /v1/customers. Field rules
// are enforced by the service layer so every violation is reported at once.
type CreateCustomerRequest struct {
	Name                    string         `json:"name"`
	Document                string         `json:"document"`
	Email                   string         `json:"email"`
	Phone                   string         `json:"phone"`
	Type                    string         `json:"type"`
	BirthDate               *time.Time     `json:"birthDate"`
	StateRegistration       string         `json:"stateRegistration"`
	StateRegistrationExempt bool           `json:"isStateRegistrationExempt"`
	Address                 AddressRequest `json:"address"`
}

// UpdateCustomerRequest is the payload for PUT /v1/customers/:id. Document
// and type are immutable and deliberately absent.
type UpdateCustomerRequest struct {
	Name    string         `json:"name"`
	Phone   string         `json:"phone"`
	Email   string         `json:"email"`
	Address AddressRequest `json:"address"`
}

// CustomerResponse is the read projection returned by every query.
type CustomerResponse struct {
	ID                      string         `json:"id"`
	Name                    string         `json:"name"`
	Document                string         `json:"document"`
	Email                   string         `json:"email"`
	Phone                   string         `json:"phone"`
	Type                    string         `json:"type"`
	BirthDate               *time.Time     `json:"birthDate,omitempty"`
	StateRegistration       string         `json:"stateRegistration,omitempty"`
	StateRegistrationExempt bool           `json:"isStateRegistrationExempt"`
	Address                 AddressRequest `json:"address"`
	CreatedAt               time.Time      `json:"createdAt"`
	UpdatedAt               *time.Time     `json:"updatedAt,omitempty"`
}

// ListCustomersResponse wraps the collection returned by GET /v1/customers.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

// CreateCustomer handles POST /v1/customers.
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "malformed request body"})
		return
	}

	created, err := h.service.CreateCustomer(c.Request.Context(), requestToDraft(req))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, modelToResponse(created))
}

// GetCustomer handles GET /v1/customers/:id.
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid customer ID"})
		return
	}

	customer, err := h.service.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, modelToResponse(customer))
}

// ListCustomers handles GET /v1/customers.
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.service.ListCustomers(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp := ListCustomersResponse{Customers: make([]CustomerResponse, 0, len(customers))}
	for _, customer := range customers {
		resp.Customers = append(resp.Customers, modelToResponse(customer))
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateCustomer handles PUT /v1/customers/:id.
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid customer ID"})
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "malformed request body"})
		return
	}

	updated, err := h.service.UpdateCustomer(c.Request.Context(), requestToUpdate(req, id))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, modelToResponse(updated))
}

// DeleteCustomer handles DELETE /v1/customers/:id.
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid customer ID"})
		return
	}

	if err := h.service.DeleteCustomer(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
