package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/johnmclaughlin205/Mortgages/internal/domain/customer"

	"github.com/shopspring/decimal"
)

// createdAtLayout matches the storage representation of created_at so an
// exported file round-trips against the table contents.
const createdAtLayout = "2006-01-02 15:04:05"

var csvHeader = []string{
	"id",
	"last_name",
	"first_name",
	"street",
	"city",
	"state",
	"zip_code",
	"loan_amount",
	"estimated_value",
	"occupancy_type",
	"created_at",
}

// WriteCSV serializes the given records to w, one row per record, preceded
// by a header row. Currency fields are rendered as plain decimal numbers.
func WriteCSV(w io.Writer, records []*customer.Customer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			strconv.FormatInt(rec.ID, 10),
			rec.LastName,
			rec.FirstName,
			rec.Street,
			rec.City,
			rec.State,
			rec.ZipCode,
			decimal.NewFromFloat(rec.LoanAmount).String(),
			decimal.NewFromFloat(rec.EstimatedValue).String(),
			string(rec.OccupancyType),
			rec.CreatedAt.UTC().Format(createdAtLayout),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for customer %d: %w", rec.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
