package handler

import (
	"net/http"

	"github.com/doughoff/ksys/internal/dto"
	"github.com/doughoff/ksys/internal/service"

	"github.com/gin-gonic/gin"
)

type StockEntriesHandler struct{ svc service.StockEntryService }

func NewStockEntriesHandler(svc service.StockEntryService) *StockEntriesHandler {
	return &StockEntriesHandler{svc: svc}
}

func (h *StockEntriesHandler) Create(c *gin.Context) {
	var req dto.CreateStockEntryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *StockEntriesHandler) List(c *gin.Context) {
	var filter dto.StockEntryFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StockEntriesHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete soft-deletes an entry and compensates stock and last cost.
func (h *StockEntriesHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
