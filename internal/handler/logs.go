package handler

import (
	"net/http"

	"github.com/doughoff/ksys/internal/dto"
	"github.com/doughoff/ksys/internal/repository"

	"github.com/gin-gonic/gin"
)

// LogsHandler exposes the append-only audit trail, read-only. It goes straight
// to the repository; there is no business logic to put in a service.
type LogsHandler struct{ repo repository.LogRepository }

func NewLogsHandler(repo repository.LogRepository) *LogsHandler {
	return &LogsHandler{repo: repo}
}

func (h *LogsHandler) List(c *gin.Context) {
	var filter dto.LogFilter
	if !bindQuery(c, &filter) {
		return
	}
	logs, count, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	hasMore := len(logs) > filter.PageSize
	if hasMore {
		logs = logs[:filter.PageSize]
	}
	items := make([]dto.LogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, dto.LogResponse{
			ID:        l.ID.String(),
			Table:     l.Table,
			RowID:     l.RowID.String(),
			Type:      l.Type,
			Data:      l.Data,
			CreatedAt: l.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	c.JSON(http.StatusOK, dto.LogListResponse{Items: items, Count: count, HasMore: hasMore})
}
