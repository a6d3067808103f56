package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	commissionModel "commission-backend/internal/domains/commission/model"
	"commission-backend/internal/domains/report/model"
	"commission-backend/internal/domains/report/repository"
)

const defaultAgendaLimit = 20

// =====================================================
// REPORT SERVICE INTERFACE
// =====================================================
type ReportService interface {
	FinancialSummary(ctx context.Context) (*model.FinancialSummary, error)
	YearlyReport(ctx context.Context, year int) (*model.YearlyReport, error)
	Agenda(ctx context.Context, limit int) ([]model.AgendaEntry, error)

	// ExportFinancialSummary renders the summary as an XLSX workbook
	ExportFinancialSummary(ctx context.Context) (*bytes.Buffer, error)
}

type reportService struct {
	repo repository.ReportRepository
}

// NewReportService creates a new report service
func NewReportService(repo repository.ReportRepository) ReportService {
	return &reportService{repo: repo}
}

func (s *reportService) FinancialSummary(ctx context.Context) (*model.FinancialSummary, error) {
	return s.repo.FinancialSummary(ctx)
}

func (s *reportService) YearlyReport(ctx context.Context, year int) (*model.YearlyReport, error) {
	if year <= 0 {
		year = time.Now().UTC().Year()
	}
	return s.repo.YearlyReport(ctx, year)
}

func (s *reportService) Agenda(ctx context.Context, limit int) ([]model.AgendaEntry, error) {
	if limit < 1 || limit > 100 {
		limit = defaultAgendaLimit
	}

	entries, err := s.repo.Agenda(ctx, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.AgendaEntry{}
	}
	return entries, nil
}

func (s *reportService) ExportFinancialSummary(ctx context.Context) (*bytes.Buffer, error) {
	summary, err := s.repo.FinancialSummary(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Resumo Financeiro"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	// 1. Revenue block
	f.SetCellValue(sheet, "A1", "Indicador")
	f.SetCellValue(sheet, "B1", "Valor")
	f.SetCellValue(sheet, "A2", "Receita confirmada")
	f.SetCellValue(sheet, "B2", summary.RevenuePaid.InexactFloat64())
	f.SetCellValue(sheet, "A3", "Receita pendente")
	f.SetCellValue(sheet, "B3", summary.RevenuePending.InexactFloat64())
	f.SetCellValue(sheet, "A4", "Total de pedidos")
	f.SetCellValue(sheet, "B4", summary.TotalOrders)

	// 2. Per-status counts, in lifecycle order
	f.SetCellValue(sheet, "A6", "Status")
	f.SetCellValue(sheet, "B6", "Pedidos")
	row := 7
	for _, status := range []string{
		commissionModel.StatusPendingPayment,
		commissionModel.StatusInProgress,
		commissionModel.StatusWaitingApproval,
		commissionModel.StatusRevisions,
		commissionModel.StatusCompleted,
		commissionModel.StatusCancelled,
	} {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), commissionModel.TranslateStatus(status))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), summary.CountsByStatus[status])
		row++
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	log.Info().Msg("[ReportService] Financial summary exported")

	return &buf, nil
}
