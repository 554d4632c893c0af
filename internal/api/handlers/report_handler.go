package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/salesops/kpireport/internal/domain"
	"github.com/salesops/kpireport/internal/service"
)

const rangeDateLayout = "2006-01-02"

type ReportHandler struct {
	service *service.ReportService
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// GetKPIReport serves GET /api/v1/reports/kpi?month=&year= with an optional
// explicit date_from/date_to override of the month range. The response is
// the complete result set or an error; there is no partial report.
func (h *ReportHandler) GetKPIReport(c *gin.Context) {
	period, ok := h.parsePeriod(c)
	if !ok {
		return
	}

	from, to := period.Range()
	if fromParam := c.Query("date_from"); fromParam != "" {
		parsed, err := time.Parse(rangeDateLayout, fromParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_from, want YYYY-MM-DD"})
			return
		}
		from = parsed
	}
	if toParam := c.Query("date_to"); toParam != "" {
		parsed, err := time.Parse(rangeDateLayout, toParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_to, want YYYY-MM-DD"})
			return
		}
		to = parsed
	}
	if !from.Before(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date_from must precede date_to"})
		return
	}

	report, err := h.service.GenerateRange(c.Request.Context(), period, from, to)
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no plan for " + period.String()})
			return
		}
		log.Error().Err(err).Str("period", period.String()).Msg("report generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "report generation failed"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetManagers serves GET /api/v1/managers.
func (h *ReportHandler) GetManagers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"managers": h.service.Managers()})
}

func (h *ReportHandler) parsePeriod(c *gin.Context) (domain.Period, bool) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month is required"})
		return domain.Period{}, false
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year is required"})
		return domain.Period{}, false
	}

	period := domain.Period{Month: month, Year: year}
	if err := period.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return domain.Period{}, false
	}
	return period, true
}
