package customer

import (
	"regexp"

	"github.com/johnmclaughlin205/Mortgages/internal/pkg/apperrors"
)

var (
	stateRegexp = regexp.MustCompile(`^[A-Za-z]{2}$`)
	zipRegexp   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// Validate checks the format and range rules for a candidate record before
// it is persisted. Rules run in a fixed order and the first failure wins.
// Required-field emptiness is the caller's job; Validate is pure.
func Validate(c *Customer) error {
	if !stateRegexp.MatchString(c.State) {
		return apperrors.NewValidationError("state", "State must be a 2-letter code (e.g., AZ, CA).")
	}
	if !zipRegexp.MatchString(c.ZipCode) {
		return apperrors.NewValidationError("zip_code", "Zip Code must be 5 digits or ZIP+4 (e.g., 85212 or 85212-1234).")
	}
	if c.LoanAmount <= 0 {
		return apperrors.NewValidationError("loan_amount", "Loan amount must be greater than 0.")
	}
	if c.EstimatedValue <= 0 {
		return apperrors.NewValidationError("estimated_value", "Estimated value must be greater than 0.")
	}
	return nil
}
