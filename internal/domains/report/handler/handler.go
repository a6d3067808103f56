package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"commission-backend/internal/domains/report/service"
	"commission-backend/internal/shared/response"
)

// =====================================================
// REPORT HANDLER
// =====================================================
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers admin-only report routes
func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports")
	{
		reports.GET("/financial", h.FinancialSummary)
		reports.GET("/financial/export", h.ExportFinancialSummary)
		reports.GET("/yearly", h.YearlyReport)
		reports.GET("/agenda", h.Agenda)
	}
}

// FinancialSummary godoc
// @Summary Financial KPIs
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Response{data=model.FinancialSummary}
// @Router /v1/admin/reports/financial [get]
func (h *ReportHandler) FinancialSummary(c *gin.Context) {
	summary, err := h.reportService.FinancialSummary(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, "OK", summary)
}

// ExportFinancialSummary godoc
// @Summary Download the financial summary as XLSX
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /v1/admin/reports/financial/export [get]
func (h *ReportHandler) ExportFinancialSummary(c *gin.Context) {
	buf, err := h.reportService.ExportFinancialSummary(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	filename := fmt.Sprintf("resumo-financeiro-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// YearlyReport godoc
// @Summary Per-month aggregates for a year
// @Tags Reports
// @Produce json
// @Param year query int false "Calendar year (defaults to current)"
// @Success 200 {object} response.Response{data=model.YearlyReport}
// @Router /v1/admin/reports/yearly [get]
func (h *ReportHandler) YearlyReport(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))

	report, err := h.reportService.YearlyReport(c.Request.Context(), year)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, "OK", report)
}

// Agenda godoc
// @Summary Upcoming deadlines of active commissions
// @Tags Reports
// @Produce json
// @Param limit query int false "Max entries"
// @Success 200 {object} response.Response{data=[]model.AgendaEntry}
// @Router /v1/admin/reports/agenda [get]
func (h *ReportHandler) Agenda(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, err := h.reportService.Agenda(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, "OK", entries)
}

func (h *ReportHandler) fail(c *gin.Context, err error) {
	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Msg("[ReportHandler] Unexpected service error")
	response.InternalServerError(c, "Ocorreu um erro inesperado.")
}
