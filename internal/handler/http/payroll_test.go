package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpay-hr/payroll-backend-go/internal/domain/payroll"
)

type stubPayrollService struct {
	listCalls  int
	listFilter payroll.PayrollFilter

	summaryCalls int
	summaryMonth int
	summaryYear  int
}

func (s *stubPayrollService) Generate(_ context.Context, _ payroll.GeneratePayrollRequest) (payroll.PayrollRecordResponse, error) {
	return payroll.PayrollRecordResponse{}, nil
}

func (s *stubPayrollService) GenerateBulk(_ context.Context, _ payroll.GenerateBulkRequest) (payroll.GenerateBulkResponse, error) {
	return payroll.GenerateBulkResponse{}, nil
}

func (s *stubPayrollService) Approve(_ context.Context, _ payroll.UpdateStatusRequest) (payroll.PayrollRecordResponse, error) {
	return payroll.PayrollRecordResponse{}, nil
}

func (s *stubPayrollService) Reject(_ context.Context, _ payroll.UpdateStatusRequest) (payroll.PayrollRecordResponse, error) {
	return payroll.PayrollRecordResponse{}, nil
}

func (s *stubPayrollService) GetRecord(_ context.Context, _ string) (payroll.PayrollRecordResponse, error) {
	return payroll.PayrollRecordResponse{}, nil
}

func (s *stubPayrollService) ListRecords(_ context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	s.listCalls++
	s.listFilter = filter
	return payroll.ListPayrollRecordResponse{Data: []payroll.PayrollRecordResponse{}}, nil
}

func (s *stubPayrollService) GetSummary(_ context.Context, month, year int) (payroll.PayrollSummaryResponse, error) {
	s.summaryCalls++
	s.summaryMonth = month
	s.summaryYear = year
	return payroll.PayrollSummaryResponse{PeriodMonth: month, PeriodYear: year}, nil
}

type stubPayslipService struct{}

func (s *stubPayslipService) Render(_ context.Context, _ string) ([]byte, string, error) {
	return []byte("%PDF-"), "payslip.pdf", nil
}

func TestListRecordsRejectsUnknownStatus(t *testing.T) {
	stub := &stubPayrollService{}
	handler := NewPayrollHandler(stub, &stubPayslipService{})

	r := httptest.NewRequest(http.MethodGet, "/api/v1/payroll?status=draft", nil)
	w := httptest.NewRecorder()
	handler.ListRecords(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, stub.listCalls)
}

func TestListRecordsRejectsUnknownSortColumn(t *testing.T) {
	stub := &stubPayrollService{}
	handler := NewPayrollHandler(stub, &stubPayslipService{})

	r := httptest.NewRequest(http.MethodGet, "/api/v1/payroll?sort_by=salary", nil)
	w := httptest.NewRecorder()
	handler.ListRecords(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, stub.listCalls)
}

func TestListRecordsAppliesFilters(t *testing.T) {
	stub := &stubPayrollService{}
	handler := NewPayrollHandler(stub, &stubPayslipService{})

	r := httptest.NewRequest(http.MethodGet,
		"/api/v1/payroll?status=approved&period_month=9&period_year=2025&page=2&limit=5&sort_by=net_pay&sort_order=asc", nil)
	w := httptest.NewRecorder()
	handler.ListRecords(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, stub.listCalls)

	filter := stub.listFilter
	require.NotNil(t, filter.Status)
	assert.Equal(t, "approved", *filter.Status)
	require.NotNil(t, filter.PeriodMonth)
	assert.Equal(t, 9, *filter.PeriodMonth)
	require.NotNil(t, filter.PeriodYear)
	assert.Equal(t, 2025, *filter.PeriodYear)
	assert.Equal(t, 2, filter.Page)
	assert.Equal(t, 5, filter.Limit)
	assert.Equal(t, "net_pay", filter.SortBy)
	assert.Equal(t, "asc", filter.SortOrder)
}

func TestListRecordsDefaults(t *testing.T) {
	stub := &stubPayrollService{}
	handler := NewPayrollHandler(stub, &stubPayslipService{})

	r := httptest.NewRequest(http.MethodGet, "/api/v1/payroll", nil)
	w := httptest.NewRecorder()
	handler.ListRecords(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, stub.listCalls)
	assert.Equal(t, 1, stub.listFilter.Page)
	assert.Equal(t, 20, stub.listFilter.Limit)
	assert.Equal(t, "created_at", stub.listFilter.SortBy)
	assert.Equal(t, "desc", stub.listFilter.SortOrder)
}

func TestGetSummaryRequiresPeriod(t *testing.T) {
	stub := &stubPayrollService{}
	handler := NewPayrollHandler(stub, &stubPayslipService{})

	r := httptest.NewRequest(http.MethodGet, "/api/v1/payroll/summary", nil)
	w := httptest.NewRecorder()
	handler.GetSummary(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	r = httptest.NewRequest(http.MethodGet, "/api/v1/payroll/summary?period_month=13&period_year=2025", nil)
	w = httptest.NewRecorder()
	handler.GetSummary(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, 0, stub.summaryCalls)

	r = httptest.NewRequest(http.MethodGet, "/api/v1/payroll/summary?period_month=9&period_year=2025", nil)
	w = httptest.NewRecorder()
	handler.GetSummary(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, stub.summaryCalls)
	assert.Equal(t, 9, stub.summaryMonth)
	assert.Equal(t, 2025, stub.summaryYear)
}
