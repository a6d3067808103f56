package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialSummary aggregates revenue and workload KPIs
type FinancialSummary struct {
	RevenuePaid    decimal.Decimal `json:"revenue_paid"`
	RevenuePending decimal.Decimal `json:"revenue_pending"`
	TotalOrders    int             `json:"total_orders"`
	CountsByStatus map[string]int  `json:"counts_by_status"`
}

// MonthlyAggregate is one month of a yearly report
type MonthlyAggregate struct {
	Month   int             `json:"month"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// YearlyReport groups per-month aggregates for one calendar year
type YearlyReport struct {
	Year   int                `json:"year"`
	Months []MonthlyAggregate `json:"months"`
}

// AgendaEntry is one upcoming deadline of an active commission
type AgendaEntry struct {
	CommissionID string    `json:"commission_id"`
	ClientName   string    `json:"client_name"`
	Type         string    `json:"type"`
	Status       string    `json:"status"`
	Deadline     time.Time `json:"deadline"`
}
