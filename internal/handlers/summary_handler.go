package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cashflow/internal/aggregation"
	apperrors "cashflow/internal/errors"
	"cashflow/internal/models"
	"cashflow/internal/services"
)

// Summary periods accepted by the period query parameter.
const (
	PeriodAll     = "all"
	PeriodCurrent = "current"
	PeriodRange   = "range"
)

// SummaryHandler handles income and expense summary requests.
type SummaryHandler struct {
	summaryService services.SummaryServicer
	now            func() time.Time
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryService services.SummaryServicer) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService, now: time.Now}
}

// SummaryQuery selects the summarized period.
type SummaryQuery struct {
	Period    string `form:"period" binding:"omitempty,oneof=all current range"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

func (h *SummaryHandler) filter(q SummaryQuery) (aggregation.Filter, error) {
	switch q.Period {
	case PeriodAll:
		return aggregation.All(), nil
	case PeriodRange:
		if q.StartDate == "" || q.EndDate == "" {
			return aggregation.Filter{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "start_date and end_date are required for a range")
		}
		start, err := models.ParseDate(q.StartDate)
		if err != nil {
			return aggregation.Filter{}, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
		end, err := models.ParseDate(q.EndDate)
		if err != nil {
			return aggregation.Filter{}, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
		if end.Before(start) {
			return aggregation.Filter{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "end_date cannot be before start_date")
		}
		return aggregation.Range(start, end), nil
	default:
		return aggregation.RollingMonth(h.now), nil
	}
}

func (h *SummaryHandler) bindFilter(c *gin.Context) (aggregation.Filter, error) {
	var q SummaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return aggregation.Filter{}, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return h.filter(q)
}

// GetSummary handles the retrieval of a period summary
// @Summary     Get a summary
// @Description Total income, total expense, balance and savings rate of a period. The current month is the default.
// @Tags        summary
// @Produce     json
// @Security    BearerAuth
// @Param       period     query string false "all, current or range"
// @Param       start_date query string false "Range start (YYYY-MM-DD)"
// @Param       end_date   query string false "Range end, inclusive (YYYY-MM-DD)"
// @Success     200 {object} aggregation.Summary "Summary"
// @Failure     400 {object} ErrorResponse "Invalid period"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /summary [get]
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	filter, err := h.bindFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.summaryService.GetSummary(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// StreamSummary streams the period summary as server-sent events
// @Summary     Stream a summary
// @Description Send the period summary now and again after every change to the transactions
// @Tags        summary
// @Produce     text/event-stream
// @Security    BearerAuth
// @Param       period     query string false "all, current or range"
// @Param       start_date query string false "Range start (YYYY-MM-DD)"
// @Param       end_date   query string false "Range end, inclusive (YYYY-MM-DD)"
// @Success     200 {object} aggregation.Summary "summary events"
// @Failure     400 {object} ErrorResponse "Invalid period"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /summary/stream [get]
func (h *SummaryHandler) StreamSummary(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	filter, err := h.bindFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summaries, stop, err := h.summaryService.WatchSummary(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer stop()

	streamEvents(c, "summary", summaries)
}
