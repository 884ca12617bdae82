package payroll

import "context"

type PayrollService interface {
	Generate(ctx context.Context, req GeneratePayrollRequest) (PayrollRecordResponse, error)
	GenerateBulk(ctx context.Context, req GenerateBulkRequest) (GenerateBulkResponse, error)
	Approve(ctx context.Context, req UpdateStatusRequest) (PayrollRecordResponse, error)
	Reject(ctx context.Context, req UpdateStatusRequest) (PayrollRecordResponse, error)
	GetRecord(ctx context.Context, id string) (PayrollRecordResponse, error)
	ListRecords(ctx context.Context, filter PayrollFilter) (ListPayrollRecordResponse, error)
	GetSummary(ctx context.Context, month, year int) (PayrollSummaryResponse, error)
}
