package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/johnmclaughlin205/Mortgages/internal/api/handler"
	"github.com/johnmclaughlin205/Mortgages/internal/api/handler/dto"
	"github.com/johnmclaughlin205/Mortgages/internal/domain/customer"
	"github.com/johnmclaughlin205/Mortgages/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupPipelineHandler() (*MockCustomerService, *chi.Mux) {
	mockService := new(MockCustomerService)
	h := handler.NewPipelineHandler(mockService, testLogger())

	router := chi.NewRouter()
	router.Get("/customers/summary", h.GetSummary)
	router.Get("/customers/export", h.ExportCSV)
	return mockService, router
}

func TestPipelineHandler_GetSummary(t *testing.T) {
	t.Run("Success - Averages clipped ratios", func(t *testing.T) {
		mockService, router := setupPipelineHandler()

		low := sampleCustomer()
		low.LoanAmount = 200000
		low.EstimatedValue = 400000

		high := sampleCustomer()
		high.ID = 2
		high.LoanAmount = 500000
		high.EstimatedValue = 50000

		mockService.On("ListCustomers", mock.Anything, customer.Filter{}).
			Return([]*customer.Customer{low, high}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/customers/summary", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp dto.SummaryResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, 2, resp.Count)
		assert.Equal(t, "700000.00", resp.TotalLoanAmount)
		require.NotNil(t, resp.AvgLoanToValuePercent)
		assert.Equal(t, "275.0", *resp.AvgLoanToValuePercent)
		mockService.AssertExpectations(t)
	})

	t.Run("Success - Empty set has null average", func(t *testing.T) {
		mockService, router := setupPipelineHandler()
		mockService.On("ListCustomers", mock.Anything, customer.Filter{}).
			Return([]*customer.Customer{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/customers/summary", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"count":0,"totalLoanAmount":"0.00","avgLoanToValuePercent":null}`, rec.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("Success - Filters forwarded", func(t *testing.T) {
		mockService, router := setupPipelineHandler()
		expectedFilter := customer.Filter{State: "AZ"}
		mockService.On("ListCustomers", mock.Anything, expectedFilter).
			Return([]*customer.Customer{sampleCustomer()}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/customers/summary?state=AZ", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Internal error - Storage failure", func(t *testing.T) {
		mockService, router := setupPipelineHandler()
		mockService.On("ListCustomers", mock.Anything, customer.Filter{}).
			Return(nil, apperrors.WrapDatabaseError(assert.AnError, "failed to query customers")).Once()

		req := httptest.NewRequest(http.MethodGet, "/customers/summary", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		mockService.AssertExpectations(t)
	})
}

func TestPipelineHandler_ExportCSV(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService, router := setupPipelineHandler()
		mockService.On("ListCustomers", mock.Anything, customer.Filter{}).
			Return([]*customer.Customer{sampleCustomer()}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/customers/export", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="mortgage_pipeline_customers.csv"`, rec.Header().Get("Content-Disposition"))

		lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "id,last_name,first_name,street,city,state,zip_code,loan_amount,estimated_value,occupancy_type,created_at", lines[0])
		assert.Equal(t, "1,Doe,Jane,123 Main St,Phoenix,AZ,85212,200000,250000,Primary Residence,2025-08-01 12:30:00", lines[1])
		mockService.AssertExpectations(t)
	})

	t.Run("Success - Empty set exports header only", func(t *testing.T) {
		mockService, router := setupPipelineHandler()
		mockService.On("ListCustomers", mock.Anything, customer.Filter{}).
			Return([]*customer.Customer{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/customers/export", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "id,last_name,first_name,street,city,state,zip_code,loan_amount,estimated_value,occupancy_type,created_at\n", rec.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("Internal error - Storage failure", func(t *testing.T) {
		mockService, router := setupPipelineHandler()
		mockService.On("ListCustomers", mock.Anything, customer.Filter{}).
			Return(nil, apperrors.WrapDatabaseError(assert.AnError, "failed to query customers")).Once()

		req := httptest.NewRequest(http.MethodGet, "/customers/export", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		mockService.AssertExpectations(t)
	})
}
