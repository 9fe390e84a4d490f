package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dirm02/course-admin-api/internal/models"
	"github.com/dirm02/course-admin-api/internal/service"
	"github.com/dirm02/course-admin-api/pkg/response"
)

type lookupService interface {
	Universities(ctx context.Context) ([]models.University, error)
	Cities(ctx context.Context) ([]models.City, error)
	Countries(ctx context.Context) ([]models.Country, error)
	Currencies(ctx context.Context) ([]models.Currency, error)
}

// LookupHandler serves the reference lists the course form autocompletes
// against. The optional q parameter applies the case-insensitive substring
// filter; an empty q returns the full list.
type LookupHandler struct {
	service lookupService
}

// NewLookupHandler constructs a lookup handler.
func NewLookupHandler(svc lookupService) *LookupHandler {
	return &LookupHandler{service: svc}
}

// Universities godoc
// @Summary List institutions
// @Tags Lookups
// @Produce json
// @Param q query string false "Substring filter"
// @Success 200 {object} response.Envelope
// @Router /lookups/universities [get]
func (h *LookupHandler) Universities(c *gin.Context) {
	list, err := h.service.Universities(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, service.FilterUniversities(list, c.Query("q")), nil)
}

// Cities godoc
// @Summary List cities
// @Tags Lookups
// @Produce json
// @Param q query string false "Substring filter"
// @Success 200 {object} response.Envelope
// @Router /lookups/cities [get]
func (h *LookupHandler) Cities(c *gin.Context) {
	list, err := h.service.Cities(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, service.FilterCities(list, c.Query("q")), nil)
}

// Countries godoc
// @Summary List countries
// @Tags Lookups
// @Produce json
// @Param q query string false "Substring filter"
// @Success 200 {object} response.Envelope
// @Router /lookups/countries [get]
func (h *LookupHandler) Countries(c *gin.Context) {
	list, err := h.service.Countries(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, service.FilterCountries(list, c.Query("q")), nil)
}

// Currencies godoc
// @Summary List currencies
// @Tags Lookups
// @Produce json
// @Param q query string false "Substring filter"
// @Success 200 {object} response.Envelope
// @Router /lookups/currencies [get]
func (h *LookupHandler) Currencies(c *gin.Context) {
	list, err := h.service.Currencies(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, service.FilterCurrencies(list, c.Query("q")), nil)
}
