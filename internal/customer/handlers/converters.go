package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	e "github.com/rbarros/cadastro/internal/customer/errors"
	"github.com/rbarros/cadastro/internal/customer/models"
)

// requestToDraft converts a create request into a domain draft.
func requestToDraft(req CreateCustomerRequest) models.CustomerDraft {
	return models.CustomerDraft{
		Name:                    req.Name,
		Document:                req.Document,
		Email:                   req.Email,
		Phone:                   req.Phone,
		Type:                    normalizeCustomerType(req.Type),
		BirthDate:               req.BirthDate,
		StateRegistration:       req.StateRegistration,
		StateRegistrationExempt: req.StateRegistrationExempt,
		Address:                 requestToAddress(req.Address),
	}
}

// requestToUpdate converts an update request into a domain update command.
func requestToUpdate(req UpdateCustomerRequest, id uuid.UUID) *models.CustomerUpdate {
	return &models.CustomerUpdate{
		ID:      id,
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: requestToAddress(req.Address),
	}
}

func requestToAddress(a AddressRequest) models.Address {
	return models.Address{
		ZipCode:      a.ZipCode,
		Street:       a.Street,
		Number:       a.Number,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
	}
}

// modelToResponse converts a Customer into its read projection.
func modelToResponse(customer *models.Customer) CustomerResponse {
	return CustomerResponse{
		ID:                      customer.ID.String(),
		Name:                    customer.Name,
		Document:                customer.Document,
		Email:                   customer.Email,
		Phone:                   customer.Phone,
		Type:                    string(customer.Type),
		BirthDate:               customer.BirthDate,
		StateRegistration:       customer.StateRegistration,
		StateRegistrationExempt: customer.StateRegistrationExempt,
		Address: AddressRequest{
			ZipCode:      customer.Address.ZipCode,
			Street:       customer.Address.Street,
			Number:       customer.Address.Number,
			Neighborhood: customer.Address.Neighborhood,
			City:         customer.Address.City,
			State:        customer.Address.State,
		},
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
	}
}

// normalizeCustomerType maps wire input onto the CustomerType enumeration.
// Unrecognized values pass through so validation reports them by field.
func normalizeCustomerType(t string) models.CustomerType {
	return models.CustomerType(strings.ToUpper(strings.TrimSpace(t)))
}

// writeServiceError maps domain errors to HTTP responses. Status-code
// mapping lives entirely here; the service keeps a transport-free error
// vocabulary.
func (h *CustomerHandler) writeServiceError(c *gin.Context, err error) {
	var vErr *e.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "validation failed",
			"errors":  vErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, e.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, e.ErrDuplicateDocument),
		errors.Is(err, e.ErrDuplicateEmail),
		errors.Is(err, e.ErrConstraintViolation):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, e.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		h.logger.Error("Internal server error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}
