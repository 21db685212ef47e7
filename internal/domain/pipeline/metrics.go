package pipeline

import (
	"github.com/johnmclaughlin205/Mortgages/internal/domain/customer"

	"github.com/shopspring/decimal"
)

// Individual loan-to-value ratios are clipped at 500% before averaging so a
// degenerate estimated value cannot distort the pipeline-wide average.
var ltvClipUpper = decimal.NewFromInt(5)

var oneHundred = decimal.NewFromInt(100)

// Metrics summarizes the current record set. AvgLoanToValuePercent is nil
// when there are no records; it is never reported as zero.
type Metrics struct {
	Count                 int
	TotalLoanAmount       decimal.Decimal
	AvgLoanToValuePercent *decimal.Decimal
}

// Summarize computes count, total loan amount and the average clipped
// loan-to-value percentage over the given records.
func Summarize(records []*customer.Customer) Metrics {
	metrics := Metrics{
		Count:           len(records),
		TotalLoanAmount: decimal.Zero,
	}
	if len(records) == 0 {
		return metrics
	}

	ratioSum := decimal.Zero
	for _, rec := range records {
		metrics.TotalLoanAmount = metrics.TotalLoanAmount.Add(decimal.NewFromFloat(rec.LoanAmount))

		ratio := decimal.NewFromFloat(rec.LoanAmount).Div(decimal.NewFromFloat(rec.EstimatedValue))
		if ratio.GreaterThan(ltvClipUpper) {
			ratio = ltvClipUpper
		}
		ratioSum = ratioSum.Add(ratio)
	}

	avg := ratioSum.Div(decimal.NewFromInt(int64(len(records)))).Mul(oneHundred)
	metrics.AvgLoanToValuePercent = &avg
	return metrics
}
