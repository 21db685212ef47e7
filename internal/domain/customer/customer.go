package customer

import (
	"strings"
	"time"
)

// OccupancyType is the fixed set of occupancy categories a borrower can
// declare for the property.
type OccupancyType string

const (
	OccupancyPrimaryResidence OccupancyType = "Primary Residence"
	OccupancySecondHome       OccupancyType = "Second Home"
	OccupancyInvestment       OccupancyType = "Investment"
)

func (o OccupancyType) IsValid() bool {
	switch o {
	case OccupancyPrimaryResidence, OccupancySecondHome, OccupancyInvestment:
		return true
	}
	return false
}

// Customer is one borrower/property record in the mortgage pipeline.
// ID and CreatedAt are assigned by the repository on insert and are
// immutable afterwards.
type Customer struct {
	ID             int64         `json:"id"`
	LastName       string        `json:"lastName"`
	FirstName      string        `json:"firstName"`
	Street         string        `json:"street"`
	City           string        `json:"city"`
	State          string        `json:"state"`
	ZipCode        string        `json:"zipCode"`
	LoanAmount     float64       `json:"loanAmount"`
	EstimatedValue float64       `json:"estimatedValue"`
	OccupancyType  OccupancyType `json:"occupancyType"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// NewCustomer builds an unsaved record from raw intake input. Text fields
// are trimmed and the state code is normalized to uppercase.
func NewCustomer(lastName, firstName, street, city, state, zipCode string, loanAmount, estimatedValue float64, occupancy OccupancyType) *Customer {
	return &Customer{
		LastName:       strings.TrimSpace(lastName),
		FirstName:      strings.TrimSpace(firstName),
		Street:         strings.TrimSpace(street),
		City:           strings.TrimSpace(city),
		State:          strings.ToUpper(strings.TrimSpace(state)),
		ZipCode:        strings.TrimSpace(zipCode),
		LoanAmount:     loanAmount,
		EstimatedValue: estimatedValue,
		OccupancyType:  occupancy,
	}
}

// LoanToValue is the loan amount divided by the estimated property value.
// Only meaningful for validated records, where EstimatedValue > 0.
func (c *Customer) LoanToValue() float64 {
	return c.LoanAmount / c.EstimatedValue
}
