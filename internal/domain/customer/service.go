package customer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/johnmclaughlin205/Mortgages/internal/pkg/apperrors"
)

const inputValidationPassed = "Input validation passed"

// CreateCustomerInput carries the raw intake form values. OccupancyType is
// the raw string so that membership in the enumeration is checked here
// rather than at the transport boundary.
type CreateCustomerInput struct {
	LastName       string
	FirstName      string
	Street         string
	City           string
	State          string
	ZipCode        string
	LoanAmount     float64
	EstimatedValue float64
	OccupancyType  string
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, input CreateCustomerInput) (*Customer, error)
	ListCustomers(ctx context.Context, filter Filter) ([]*Customer, error)
	DeleteCustomer(ctx context.Context, customerID int64) error
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   CustomerRepository
	logger *slog.Logger
}

func NewCustomerService(repo CustomerRepository, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	return &customerService{
		repo:   repo,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

// requiredFields lists the text inputs that must be non-empty after
// trimming, in the order they are reported.
func requiredFields(input CreateCustomerInput) []struct{ name, value string } {
	return []struct{ name, value string }{
		{"last_name", input.LastName},
		{"first_name", input.FirstName},
		{"street", input.Street},
		{"city", input.City},
		{"state", input.State},
		{"zip_code", input.ZipCode},
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to create new pipeline record")

	for _, field := range requiredFields(input) {
		if strings.TrimSpace(field.value) == "" {
			s.logger.WarnContext(ctx, "Validation failed: required field is empty", slog.String("field", field.name))
			return nil, apperrors.NewValidationError(field.name, "field cannot be empty")
		}
	}

	occupancy := OccupancyType(strings.TrimSpace(input.OccupancyType))
	if !occupancy.IsValid() {
		s.logger.WarnContext(ctx, "Validation failed: unknown occupancy type", slog.String("occupancy_type", input.OccupancyType))
		return nil, apperrors.NewValidationError("occupancy_type", "Occupancy type must be Primary Residence, Second Home, or Investment.")
	}

	cust := NewCustomer(
		input.LastName,
		input.FirstName,
		input.Street,
		input.City,
		input.State,
		input.ZipCode,
		input.LoanAmount,
		input.EstimatedValue,
		occupancy,
	)

	if err := Validate(cust); err != nil {
		s.logger.WarnContext(ctx, "Validation failed for candidate record", slog.Any("error", err))
		return nil, err
	}
	s.logger.InfoContext(ctx, inputValidationPassed)

	s.logger.InfoContext(ctx, "Calling repository Save")
	if err := s.repo.Save(ctx, cust); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save new record", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new customer: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully created new pipeline record", slog.Int64("customerID", cust.ID))
	return cust, nil
}

func (s *customerService) ListCustomers(ctx context.Context, filter Filter) ([]*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to list pipeline records",
		slog.Bool("filtered", !filter.IsZero()))

	customers, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing records", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved pipeline records", slog.Int("count", len(customers)))
	return customers, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	s.logger.InfoContext(ctx, "Attempting to delete pipeline record", slog.Int64("customerID", customerID))

	if customerID <= 0 {
		s.logger.WarnContext(ctx, "Validation failed: invalid customer ID")
		return fmt.Errorf("%w: customer ID must be positive", apperrors.ErrInvalidArgument)
	}

	// Deleting an id that no longer exists is a success; the repository
	// treats a zero-row delete as a no-op.
	if err := s.repo.Delete(ctx, customerID); err != nil {
		s.logger.ErrorContext(ctx, "Repository error deleting record", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer %d: %w", customerID, err)
	}

	s.logger.InfoContext(ctx, "Successfully deleted pipeline record")
	return nil
}
