package repository

import (
	"context"

	"commission-backend/internal/domains/report/model"
)

// =====================================================
// REPORT REPOSITORY INTERFACE
// =====================================================
type ReportRepository interface {
	FinancialSummary(ctx context.Context) (*model.FinancialSummary, error)
	YearlyReport(ctx context.Context, year int) (*model.YearlyReport, error)

	// Agenda returns active commissions with a deadline, soonest first
	Agenda(ctx context.Context, limit int) ([]model.AgendaEntry, error)
}
