package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/johnmclaughlin205/Mortgages/internal/domain/customer"
	"github.com/johnmclaughlin205/Mortgages/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const customerColumns = "id, last_name, first_name, street, city, state, zip_code, loan_amount, estimated_value, occupancy_type, created_at"

type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
	Close()
}

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
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
        INSERT INTO customers (last_name, first_name, street, city, state, zip_code, loan_amount, estimated_value, occupancy_type, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
        RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
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
		&cust.CreatedAt,
	)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert customer: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", cust.ID))
	return nil
}

func (r *CustomerRepository) FindAll(ctx context.Context, filter customer.Filter) ([]*customer.Customer, error) {
	r.logger.InfoContext(ctx, "Attempting to find customers", slog.Bool("filtered", !filter.IsZero()))

	query, args := buildFindAllQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query customers: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		var cust customer.Customer
		var occupancy string
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
			&cust.CreatedAt,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan customer row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan customer row: %w", apperrors.ErrDatabase, err)
		}
		cust.OccupancyType = customer.OccupancyType(occupancy)
		customers = append(customers, &cust)
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

	cmdTag, err := r.db.Exec(ctx, "DELETE FROM customers WHERE id = $1", customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete customer: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.InfoContext(ctx, "Delete affected zero rows, customer already absent")
	}

	r.logger.InfoContext(ctx, "Customer delete completed")
	return nil
}

// buildFindAllQuery composes the SELECT from the present filter fields only.
// ILIKE gives the case-insensitive substring semantics the sqlite backend
// gets from LIKE.
func buildFindAllQuery(filter customer.Filter) (string, []any) {
	query := "SELECT " + customerColumns + " FROM customers"

	var where []string
	var args []any
	if filter.Name != "" {
		like := "%" + filter.Name + "%"
		args = append(args, like, like)
		where = append(where, "(last_name ILIKE $"+strconv.Itoa(len(args)-1)+" OR first_name ILIKE $"+strconv.Itoa(len(args))+")")
	}
	if filter.City != "" {
		args = append(args, "%"+filter.City+"%")
		where = append(where, "city ILIKE $"+strconv.Itoa(len(args)))
	}
	if filter.State != "" {
		args = append(args, filter.NormalizedState())
		where = append(where, "state = $"+strconv.Itoa(len(args)))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	return query, args
}
