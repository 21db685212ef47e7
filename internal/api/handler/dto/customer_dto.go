package dto

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/johnmclaughlin205/Mortgages/internal/domain/customer"
	"github.com/johnmclaughlin205/Mortgages/internal/domain/pipeline"

	"github.com/shopspring/decimal"
)

type CreateCustomerRequest struct {
	LastName       string  `json:"lastName"`
	FirstName      string  `json:"firstName"`
	Street         string  `json:"street"`
	City           string  `json:"city"`
	State          string  `json:"state"`
	ZipCode        string  `json:"zipCode"`
	LoanAmount     float64 `json:"loanAmount"`
	EstimatedValue float64 `json:"estimatedValue"`
	OccupancyType  string  `json:"occupancyType"`
}

// Validate rejects requests that are structurally unusable before they
// reach the service; field format rules stay with the domain validator.
func (r *CreateCustomerRequest) Validate() error {
	required := map[string]string{
		"lastName":  r.LastName,
		"firstName": r.FirstName,
		"street":    r.Street,
		"city":      r.City,
		"state":     r.State,
		"zipCode":   r.ZipCode,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
	}
	return nil
}

func (r *CreateCustomerRequest) ToInput() customer.CreateCustomerInput {
	return customer.CreateCustomerInput{
		LastName:       r.LastName,
		FirstName:      r.FirstName,
		Street:         r.Street,
		City:           r.City,
		State:          r.State,
		ZipCode:        r.ZipCode,
		LoanAmount:     r.LoanAmount,
		EstimatedValue: r.EstimatedValue,
		OccupancyType:  r.OccupancyType,
	}
}

type CustomerResponse struct {
	CustomerID     string    `json:"customerId"`
	LastName       string    `json:"lastName"`
	FirstName      string    `json:"firstName"`
	Street         string    `json:"street"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	ZipCode        string    `json:"zipCode"`
	LoanAmount     string    `json:"loanAmount"`
	EstimatedValue string    `json:"estimatedValue"`
	OccupancyType  string    `json:"occupancyType"`
	CreatedAt      time.Time `json:"createdAt"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}

	formatDecimalMoney := func(d decimal.Decimal) string {
		return d.StringFixed(2)
	}

	return CustomerResponse{
		CustomerID:     strconv.FormatInt(cust.ID, 10),
		LastName:       cust.LastName,
		FirstName:      cust.FirstName,
		Street:         cust.Street,
		City:           cust.City,
		State:          cust.State,
		ZipCode:        cust.ZipCode,
		LoanAmount:     formatDecimalMoney(decimal.NewFromFloat(cust.LoanAmount)),
		EstimatedValue: formatDecimalMoney(decimal.NewFromFloat(cust.EstimatedValue)),
		OccupancyType:  string(cust.OccupancyType),
		CreatedAt:      cust.CreatedAt,
	}
}

type SummaryResponse struct {
	Count                 int     `json:"count"`
	TotalLoanAmount       string  `json:"totalLoanAmount"`
	AvgLoanToValuePercent *string `json:"avgLoanToValuePercent"`
}

func NewSummaryResponse(metrics pipeline.Metrics) SummaryResponse {
	resp := SummaryResponse{
		Count:           metrics.Count,
		TotalLoanAmount: metrics.TotalLoanAmount.StringFixed(2),
	}
	if metrics.AvgLoanToValuePercent != nil {
		avg := metrics.AvgLoanToValuePercent.StringFixed(1)
		resp.AvgLoanToValuePercent = &avg
	}
	return resp
}

type ErrorDetail struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
