package handler

import (
	"net/http"

	"github.com/doughoff/ksys/internal/dto"
	"github.com/doughoff/ksys/internal/service"

	"github.com/gin-gonic/gin"
)

type SummaryHandler struct{ svc service.SummaryService }

func NewSummaryHandler(svc service.SummaryService) *SummaryHandler {
	return &SummaryHandler{svc: svc}
}

// Daily returns every sale and payment process of one calendar day.
func (h *SummaryHandler) Daily(c *gin.Context) {
	var filter dto.SummaryFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Daily(c.Request.Context(), filter.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
