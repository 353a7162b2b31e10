package handler

import (
	"net/http"

	"github.com/doughoff/ksys/internal/dto"
	"github.com/doughoff/ksys/internal/service"

	"github.com/gin-gonic/gin"
)

type EntitiesHandler struct{ svc service.EntityService }

func NewEntitiesHandler(svc service.EntityService) *EntitiesHandler {
	return &EntitiesHandler{svc: svc}
}

func (h *EntitiesHandler) Create(c *gin.Context) {
	var req dto.CreateEntityRequest
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

func (h *EntitiesHandler) List(c *gin.Context) {
	var filter dto.EntityFilter
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

func (h *EntitiesHandler) GetByID(c *gin.Context) {
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

func (h *EntitiesHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateEntityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListCredits returns the customer's full credit history, oldest first.
func (h *EntitiesHandler) ListCredits(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListCredits(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
