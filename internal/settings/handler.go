package settings

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Kento03Onodera/pick-re-crm/platform/httpkit"
	"github.com/Kento03Onodera/pick-re-crm/platform/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/statuses", h.GetStatuses)
	rg.PUT("/statuses", h.PutStatuses)
	rg.GET("/targets/:year", h.GetTargets)
	rg.PUT("/targets/:year", h.PutTargets)
}

func (h *Handler) GetStatuses(c *gin.Context) {
	resp, err := h.svc.GetStatuses(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) PutStatuses(c *gin.Context) {
	var req PutStatusesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := validator.Validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resp, err := h.svc.PutStatuses(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) GetTargets(c *gin.Context) {
	year, ok := parseYear(c)
	if !ok {
		return
	}

	resp, err := h.svc.GetTargets(c.Request.Context(), year)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) PutTargets(c *gin.Context) {
	year, ok := parseYear(c)
	if !ok {
		return
	}

	var req PutTargetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := validator.Validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resp, err := h.svc.PutTargets(c.Request.Context(), year, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func parseYear(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 || year > time.Now().Year()+10 {
		httpkit.Error(c, http.StatusBadRequest, "invalid year", nil)
		return 0, false
	}
	return year, true
}
