package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	commissionModel "commission-backend/internal/domains/commission/model"
	"commission-backend/internal/domains/report/model"
)

// =====================================================
// POSTGRES IMPLEMENTATION
// =====================================================
type postgresReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new postgres report repository
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &postgresReportRepository{pool: pool}
}

func (r *postgresReportRepository) FinancialSummary(ctx context.Context) (*model.FinancialSummary, error) {
	summary := &model.FinancialSummary{
		RevenuePaid:    decimal.Zero,
		RevenuePending: decimal.Zero,
		CountsByStatus: make(map[string]int),
	}

	// 1. Revenue split by payment status, cancelled orders excluded
	query := `
		SELECT
			COALESCE(SUM(price) FILTER (WHERE payment_status = $1), 0),
			COALESCE(SUM(price) FILTER (WHERE payment_status <> $1), 0)
		FROM comissoes
		WHERE status <> $2`

	err := r.pool.QueryRow(ctx, query,
		commissionModel.PaymentPaid,
		commissionModel.StatusCancelled,
	).Scan(&summary.RevenuePaid, &summary.RevenuePending)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue: %w", err)
	}

	// 2. Order counts per status
	rows, err := r.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM comissoes GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		summary.CountsByStatus[status] = count
		summary.TotalOrders += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summary, nil
}

func (r *postgresReportRepository) YearlyReport(ctx context.Context, year int) (*model.YearlyReport, error) {
	query := `
		SELECT
			EXTRACT(MONTH FROM created_at)::int AS month,
			COUNT(*),
			COALESCE(SUM(price) FILTER (WHERE payment_status = $2), 0)
		FROM comissoes
		WHERE EXTRACT(YEAR FROM created_at) = $1 AND status <> $3
		GROUP BY month
		ORDER BY month`

	rows, err := r.pool.Query(ctx, query,
		year,
		commissionModel.PaymentPaid,
		commissionModel.StatusCancelled,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate yearly report: %w", err)
	}
	defer rows.Close()

	byMonth := make(map[int]model.MonthlyAggregate, 12)
	for rows.Next() {
		var m model.MonthlyAggregate
		if err := rows.Scan(&m.Month, &m.Orders, &m.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan monthly aggregate: %w", err)
		}
		byMonth[m.Month] = m
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Every month is present in the response, empty months zeroed
	report := &model.YearlyReport{Year: year, Months: make([]model.MonthlyAggregate, 0, 12)}
	for month := 1; month <= 12; month++ {
		if m, ok := byMonth[month]; ok {
			report.Months = append(report.Months, m)
			continue
		}
		report.Months = append(report.Months, model.MonthlyAggregate{
			Month:   month,
			Revenue: decimal.Zero,
		})
	}

	return report, nil
}

func (r *postgresReportRepository) Agenda(ctx context.Context, limit int) ([]model.AgendaEntry, error) {
	query := `
		SELECT id, client_name, type, status, deadline
		FROM comissoes
		WHERE deadline IS NOT NULL AND status NOT IN ($1, $2)
		ORDER BY deadline ASC
		LIMIT $3`

	rows, err := r.pool.Query(ctx, query,
		commissionModel.StatusCompleted,
		commissionModel.StatusCancelled,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load agenda: %w", err)
	}
	defer rows.Close()

	var entries []model.AgendaEntry
	for rows.Next() {
		var e model.AgendaEntry
		if err := rows.Scan(&e.CommissionID, &e.ClientName, &e.Type, &e.Status, &e.Deadline); err != nil {
			return nil, fmt.Errorf("failed to scan agenda entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
