package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/johnmclaughlin205/Mortgages/internal/domain/customer"
	"github.com/johnmclaughlin205/Mortgages/internal/pkg/apperrors"
)

// createdAtLayout is the format produced by sqlite's datetime('now'),
// always UTC.
const createdAtLayout = "2006-01-02 15:04:05"

const customerColumns = "id, last_name, first_name, street, city, state, zip_code, loan_amount, estimated_value, occupancy_type, created_at"

type CustomerRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db *sql.DB, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("db cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func (r *CustomerRepository) Save(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to insert new customer", slog.String("last_name", cust.LastName))

	query := `
        INSERT INTO customers (last_name, first_name, street, city, state, zip_code, loan_amount, estimated_value, occupancy_type)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id, created_at`

	var createdAt string
	err := r.db.QueryRowContext(ctx, query,
		cust.LastName,
		cust.FirstName,
		cust.Street,
		cust.City,
		cust.State,
		cust.ZipCode,
		cust.LoanAmount,
		cust.EstimatedValue,
		string(cust.OccupancyType),
	).Scan(
		&cust.ID,
		&createdAt,
	)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert customer: %w", apperrors.ErrDatabase, err)
	}

	ts, err := parseCreatedAt(createdAt)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to parse created_at from storage", slog.Any("error", err))
		return fmt.Errorf("%w: failed to parse created_at: %w", apperrors.ErrDatabase, err)
	}
	cust.CreatedAt = ts

	r.logger.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", cust.ID))
	return nil
}

func (r *CustomerRepository) FindAll(ctx context.Context, filter customer.Filter) ([]*customer.Customer, error) {
	r.logger.InfoContext(ctx, "Attempting to find customers", slog.Bool("filtered", !filter.IsZero()))

	query, args := buildFindAllQuery(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query customers: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		cust, err := scanCustomer(rows)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan customer row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan customer row: %w", apperrors.ErrDatabase, err)
		}
		customers = append(customers, cust)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating customer rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating customer rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Finished finding customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (r *CustomerRepository) Delete(ctx context.Context, customerID int64) error {
	r.logger.InfoContext(ctx, "Attempting to delete customer", slog.Int64("customerID", customerID))

	result, err := r.db.ExecContext(ctx, "DELETE FROM customers WHERE id = ?", customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete customer: %w", apperrors.ErrDatabase, err)
	}

	// At-most-one-row semantics: zero affected rows means the id was
	// already gone, which is a success.
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		r.logger.InfoContext(ctx, "Delete affected zero rows, customer already absent")
	}

	r.logger.InfoContext(ctx, "Customer delete completed")
	return nil
}

// buildFindAllQuery composes the SELECT from the present filter fields only.
// Ordering is always created_at descending with id descending as tie-break,
// so results are deterministic even with identical timestamps.
func buildFindAllQuery(filter customer.Filter) (string, []any) {
	query := "SELECT " + customerColumns + " FROM customers"

	var where []string
	var args []any
	if filter.Name != "" {
		where = append(where, "(last_name LIKE ? OR first_name LIKE ?)")
		like := "%" + filter.Name + "%"
		args = append(args, like, like)
	}
	if filter.City != "" {
		where = append(where, "city LIKE ?")
		args = append(args, "%"+filter.City+"%")
	}
	if filter.State != "" {
		where = append(where, "state = ?")
		args = append(args, filter.NormalizedState())
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	return query, args
}

func scanCustomer(rows *sql.Rows) (*customer.Customer, error) {
	var cust customer.Customer
	var occupancy string
	var createdAt string

	err := rows.Scan(
		&cust.ID,
		&cust.LastName,
		&cust.FirstName,
		&cust.Street,
		&cust.City,
		&cust.State,
		&cust.ZipCode,
		&cust.LoanAmount,
		&cust.EstimatedValue,
		&occupancy,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	cust.OccupancyType = customer.OccupancyType(occupancy)
	cust.CreatedAt, err = parseCreatedAt(createdAt)
	if err != nil {
		return nil, err
	}
	return &cust, nil
}

func parseCreatedAt(value string) (time.Time, error) {
	return time.ParseInLocation(createdAtLayout, value, time.UTC)
}
