// Package db provides the gorm-backed customer repository. Document and
// email uniqueness is enforced at the storage layer by unique indexes, so a
// race between two concurrent writes is resolved here, not by the service's
// advisory pre-checks.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	e "github.com/rbarros/cadastro/internal/customer/errors"
	"github.com/rbarros/cadastro/internal/customer/models"
)

type Repository struct {
	db *gorm.DB
}

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func NewRepository(cfg *Config) (*Repository, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.Customer{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	result := r.db.WithContext(ctx).Create(customer)
	if result.Error != nil {
		if dup := duplicateKey(result.Error); dup != nil {
			return dup
		}
		return result.Error
	}
	return nil
}

func (r *Repository) GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	return r.getBy(ctx, "id = ?", id)
}

func (r *Repository) GetCustomerByDocument(ctx context.Context, doc string) (*models.Customer, error) {
	return r.getBy(ctx, "document = ?", doc)
}

func (r *Repository) GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return r.getBy(ctx, "email = ?", email)
}

func (r *Repository) getBy(ctx context.Context, query string, arg interface{}) (*models.Customer, error) {
	var customer models.Customer
	result := r.db.WithContext(ctx).First(&customer, query, arg)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &customer, nil
}

func (r *Repository) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	var customers []*models.Customer
	result := r.db.WithContext(ctx).Order("created_at").Find(&customers)
	if result.Error != nil {
		return nil, result.Error
	}
	return customers, nil
}

// UpdateCustomer persists the mutable fields of an existing customer.
// The column list keeps id, document, type and created_at immutable at the
// storage layer regardless of what the struct carries.
func (r *Repository) UpdateCustomer(ctx context.Context, customer *models.Customer) error {
	result := r.db.WithContext(ctx).Model(&models.Customer{}).
		Where("id = ?", customer.ID).
		Select("name", "phone", "email", "updated_at",
			"address_zip_code", "address_street", "address_number",
			"address_neighborhood", "address_city", "address_state").
		Updates(customer)

	if result.Error != nil {
		if dup := duplicateKey(result.Error); dup != nil {
			return dup
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Customer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) WithTransaction(ctx context.Context, fn func(repo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func (r *Repository) Exec(ctx context.Context, query string, params ...interface{}) error {
	result := r.db.WithContext(ctx).Exec(query, params...)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

// duplicateKey attributes a unique-index violation to the offending column.
// Postgres names the violated index ("idx_customers_document") and SQLite
// the column ("customers.email"), so the column name appears in the driver
// message either way. Anything unattributable stays a ConstraintViolation.
func duplicateKey(err error) error {
	msg := err.Error()
	if !errors.Is(err, gorm.ErrDuplicatedKey) &&
		!strings.Contains(msg, "duplicate key") &&
		!strings.Contains(msg, "UNIQUE constraint") {
		return nil
	}
	switch {
	case strings.Contains(msg, "document"):
		return e.ErrDuplicateDocument
	case strings.Contains(msg, "email"):
		return e.ErrDuplicateEmail
	default:
		return e.ErrConstraintViolation
	}
}
