// Package controller implements the core business logic (service layer)
// for managing Customer records: payload validation, uniqueness enforcement
// against the repository and lifecycle event production.
package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rbarros/cadastro/internal/customer/db"
	"github.com/rbarros/cadastro/internal/customer/document"
	e "github.com/rbarros/cadastro/internal/customer/errors"
	"github.com/rbarros/cadastro/internal/customer/events"
	"github.com/rbarros/cadastro/internal/customer/models"
	"github.com/rbarros/cadastro/internal/customer/validation"
)

type EventProducer interface {
	Produce(eventType events.EventType, customer *models.Customer)
}

// Repository defines the storage interface for Customer records.
type Repository interface {
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	GetCustomerByDocument(ctx context.Context, doc string) (*models.Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
	UpdateCustomer(ctx context.Context, customer *models.Customer) error
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
	WithTransaction(ctx context.Context, fn func(repo *db.Repository) error) error
	Close() error
}

// CustomerService provides methods to manage customers via repository
// operations and event production.
type CustomerService struct {
	repo     Repository
	producer EventProducer
	logger   *zap.Logger
}

// NewCustomerService constructs a CustomerService with a repository,
// an event producer, and a logger.
func NewCustomerService(repo Repository, producer EventProducer, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("customer_service"),
	}
}

// CreateCustomer admits a new Customer after validating the draft and
// checking document and email uniqueness, then persists it and triggers a
// creation event. The store's unique indexes settle any race that slips
// past the pre-checks, surfaced in the same duplicate vocabulary.
func (s *CustomerService) CreateCustomer(ctx context.Context, draft models.CustomerDraft) (*models.Customer, error) {
	if fields := validation.ValidateDraft(draft); len(fields) > 0 {
		return nil, &e.ValidationError{Fields: fields}
	}
	draft.Document = document.Normalize(draft.Document)

	if err := s.ensureDocumentFree(ctx, draft.Document); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, draft.Email, uuid.Nil); err != nil {
		return nil, err
	}

	customer := models.NewCustomer(draft)
	if err := s.repo.CreateCustomer(ctx, customer); err != nil {
		if isDuplicate(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	go func() {
		s.producer.Produce(events.CustomerCreated, customer)
	}()
	return customer, nil
}

// GetCustomer retrieves a Customer by ID, returning ErrNotFound if absent.
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

// ListCustomers returns all customers in the registry.
func (s *CustomerService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// UpdateCustomer replaces the mutable fields of an existing customer.
// A changed email is checked against the rest of the registry; keeping the
// customer's own email is always allowed.
func (s *CustomerService) UpdateCustomer(ctx context.Context, update *models.CustomerUpdate) (*models.Customer, error) {
	if update.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: invalid customer ID", e.ErrInvalidInput)
	}
	if fields := validation.ValidateUpdate(*update); len(fields) > 0 {
		return nil, &e.ValidationError{Fields: fields}
	}

	customer, err := s.repo.GetCustomer(ctx, update.ID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get customer for update: %w", err)
	}

	if customer.Email != update.Email {
		if err := s.ensureEmailFree(ctx, update.Email, update.ID); err != nil {
			return nil, err
		}
	}

	customer.Update(update.Name, update.Phone, update.Email, update.Address)
	if err := s.repo.UpdateCustomer(ctx, customer); err != nil {
		if isDuplicate(err) || errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	go func() {
		s.producer.Produce(events.CustomerUpdated, customer)
	}()
	return customer, nil
}

// DeleteCustomer removes a Customer by ID and fires a deletion event.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to get customer for deletion: %w", err)
	}

	if err := s.repo.DeleteCustomer(ctx, id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	go func() {
		s.producer.Produce(events.CustomerDeleted, customer)
	}()

	return nil
}

// ensureDocumentFree fails with ErrDuplicateDocument when any customer
// already owns the document.
func (s *CustomerService) ensureDocumentFree(ctx context.Context, doc string) error {
	_, err := s.repo.GetCustomerByDocument(ctx, doc)
	if err == nil {
		return e.ErrDuplicateDocument
	}
	if !errors.Is(err, e.ErrNotFound) {
		return fmt.Errorf("failed to check document uniqueness: %w", err)
	}
	return nil
}

// ensureEmailFree fails with ErrDuplicateEmail when a customer other than
// owner already uses the email.
func (s *CustomerService) ensureEmailFree(ctx context.Context, email string, owner uuid.UUID) error {
	existing, err := s.repo.GetCustomerByEmail(ctx, email)
	if err == nil {
		if existing.ID != owner {
			return e.ErrDuplicateEmail
		}
		return nil
	}
	if !errors.Is(err, e.ErrNotFound) {
		return fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	return nil
}

func isDuplicate(err error) bool {
	return errors.Is(err, e.ErrDuplicateDocument) ||
		errors.Is(err, e.ErrDuplicateEmail) ||
		errors.Is(err, e.ErrConstraintViolation)
}
