package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salonbook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/salons", h.ListSalons)
	rg.GET("/salons/:id", h.GetSalon)
	rg.GET("/salons/:id/availability", h.GetAvailability)
}

func (h *Handler) ListSalons(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	salons, err := h.service.ListSalons(c.Request.Context(), limit, offset)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"salons": salons})
}

func (h *Handler) GetSalon(c *gin.Context) {
	id, ok := salonID(c)
	if !ok {
		return
	}
	detail, err := h.service.GetSalonDetail(c.Request.Context(), id)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

func (h *Handler) GetAvailability(c *gin.Context) {
	id, ok := salonID(c)
	if !ok {
		return
	}

	var stylistID *int64
	if raw := c.Query("stylist_id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid stylist_id")
			return
		}
		stylistID = &v
	}

	avail, err := h.service.GetAvailability(c.Request.Context(), id, stylistID, c.Query("date"))
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	response.Success(c, http.StatusOK, avail)
}

func salonID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid salon id")
		return 0, false
	}
	return id, true
}

func writeCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "SALON_NOT_FOUND", "Salon does not exist or is not published")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load catalog")
	}
}
