package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	e "github.com/rbarros/cadastro/internal/customer/errors"
	"github.com/rbarros/cadastro/internal/customer/models"
)

// stubController implements CustomerController with pluggable behavior.
type stubController struct {
	createCustomer func(context.Context, models.CustomerDraft) (*models.Customer, error)
	getCustomer    func(context.Context, uuid.UUID) (*models.Customer, error)
	listCustomers  func(context.Context) ([]*models.Customer, error)
	updateCustomer func(context.Context, *models.CustomerUpdate) (*models.Customer, error)
	deleteCustomer func(context.Context, uuid.UUID) error
}

func (s *stubController) CreateCustomer(ctx context.Context, d models.CustomerDraft) (*models.Customer, error) {
	return s.createCustomer(ctx, d)
}

func (s *stubController) GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	return s.getCustomer(ctx, id)
}

func (s *stubController) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	return s.listCustomers(ctx)
}

func (s *stubController) UpdateCustomer(ctx context.Context, u *models.CustomerUpdate) (*models.Customer, error) {
	return s.updateCustomer(ctx, u)
}

func (s *stubController) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	return s.deleteCustomer(ctx, id)
}

func newTestHandler(t *testing.T, ctrl *stubController) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCustomerHandler(ctrl, zaptest.NewLogger(t))
	router := gin.New()
	v1 := router.Group("/v1")
	v1.POST("/customers", h.CreateCustomer)
	v1.GET("/customers", h.ListCustomers)
	v1.GET("/customers/:id", h.GetCustomer)
	v1.PUT("/customers/:id", h.UpdateCustomer)
	v1.DELETE("/customers/:id", h.DeleteCustomer)
	return router
}

func performJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sampleCustomer() *models.Customer {
	birth := time.Date(2000, 3, 10, 0, 0, 0, 0, time.UTC)
	return &models.Customer{
		ID:        uuid.New(),
		Name:      "Maria Silva",
		Document:  "52998224725",
		Email:     "maria@x.com",
		Phone:     "(11) 98888-7777",
		Type:      models.Individual,
		BirthDate: &birth,
		Address: models.Address{
			ZipCode:      "01310-100",
			Street:       "Avenida Paulista",
			Number:       "1578",
			Neighborhood: "Bela Vista",
			City:         "Sao Paulo",
			State:        "SP",
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestCreateCustomerHTTP(t *testing.T) {
	customer := sampleCustomer()
	router := newTestHandler(t, &stubController{
		createCustomer: func(_ context.Context, d models.CustomerDraft) (*models.Customer, error) {
			assert.Equal(t, "Maria Silva", d.Name)
			return customer, nil
		},
	})

	w := performJSON(router, http.MethodPost, "/v1/customers", CreateCustomerRequest{
		Name:     "Maria Silva",
		Document: "529.982.247-25",
		Email:    "maria@x.com",
		Phone:    "(11) 98888-7777",
		Type:     "INDIVIDUAL",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp CustomerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, customer.ID.String(), resp.ID)
}

func TestCreateCustomerHTTP_ValidationFailed(t *testing.T) {
	router := newTestHandler(t, &stubController{
		createCustomer: func(_ context.Context, _ models.CustomerDraft) (*models.Customer, error) {
			return nil, &e.ValidationError{Fields: []e.FieldError{
				{Field: "name", Message: "name is required"},
				{Field: "document", Message: "document must be a valid CPF or CNPJ"},
			}}
		},
	})

	w := performJSON(router, http.MethodPost, "/v1/customers", CreateCustomerRequest{})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Message string         `json:"message"`
		Errors  []e.FieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation failed", resp.Message)
	assert.Len(t, resp.Errors, 2)
}

func TestCreateCustomerHTTP_DuplicateDocument(t *testing.T) {
	router := newTestHandler(t, &stubController{
		createCustomer: func(_ context.Context, _ models.CustomerDraft) (*models.Customer, error) {
			return nil, e.ErrDuplicateDocument
		},
	})

	w := performJSON(router, http.MethodPost, "/v1/customers", CreateCustomerRequest{})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateCustomerHTTP_MalformedBody(t *testing.T) {
	router := newTestHandler(t, &stubController{})

	req := httptest.NewRequest(http.MethodPost, "/v1/customers", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCustomerHTTP(t *testing.T) {
	customer := sampleCustomer()
	router := newTestHandler(t, &stubController{
		getCustomer: func(_ context.Context, id uuid.UUID) (*models.Customer, error) {
			assert.Equal(t, customer.ID, id)
			return customer, nil
		},
	})

	w := performJSON(router, http.MethodGet, "/v1/customers/"+customer.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp CustomerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "52998224725", resp.Document)
}

func TestGetCustomerHTTP_InvalidID(t *testing.T) {
	router := newTestHandler(t, &stubController{})

	w := performJSON(router, http.MethodGet, "/v1/customers/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCustomerHTTP_NotFound(t *testing.T) {
	router := newTestHandler(t, &stubController{
		getCustomer: func(_ context.Context, _ uuid.UUID) (*models.Customer, error) {
			return nil, e.ErrNotFound
		},
	})

	w := performJSON(router, http.MethodGet, "/v1/customers/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListCustomersHTTP(t *testing.T) {
	router := newTestHandler(t, &stubController{
		listCustomers: func(_ context.Context) ([]*models.Customer, error) {
			return []*models.Customer{sampleCustomer(), sampleCustomer()}, nil
		},
	})

	w := performJSON(router, http.MethodGet, "/v1/customers", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp ListCustomersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Customers, 2)
}

func TestUpdateCustomerHTTP(t *testing.T) {
	customer := sampleCustomer()
	router := newTestHandler(t, &stubController{
		updateCustomer: func(_ context.Context, u *models.CustomerUpdate) (*models.Customer, error) {
			assert.Equal(t, customer.ID, u.ID)
			assert.Equal(t, "maria.o@x.com", u.Email)
			return customer, nil
		},
	})

	w := performJSON(router, http.MethodPut, "/v1/customers/"+customer.ID.String(), UpdateCustomerRequest{
		Name:  "Maria S. Oliveira",
		Phone: "(21) 97777-6666",
		Email: "maria.o@x.com",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateCustomerHTTP_DuplicateEmail(t *testing.T) {
	router := newTestHandler(t, &stubController{
		updateCustomer: func(_ context.Context, _ *models.CustomerUpdate) (*models.Customer, error) {
			return nil, e.ErrDuplicateEmail
		},
	})

	w := performJSON(router, http.MethodPut, "/v1/customers/"+uuid.NewString(), UpdateCustomerRequest{})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteCustomerHTTP(t *testing.T) {
	called := false
	router := newTestHandler(t, &stubController{
		deleteCustomer: func(_ context.Context, _ uuid.UUID) error {
			called = true
			return nil
		},
	})

	w := performJSON(router, http.MethodDelete, "/v1/customers/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, called)
}

func TestDeleteCustomerHTTP_NotFound(t *testing.T) {
	router := newTestHandler(t, &stubController{
		deleteCustomer: func(_ context.Context, _ uuid.UUID) error {
			return e.ErrNotFound
		},
	})

	w := performJSON(router, http.MethodDelete, "/v1/customers/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
