package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"hotelcomp/internal/comparables"
	api "hotelcomp/pkg/contracts/api/v1"
	"hotelcomp/pkg/contracts/domain"
)

// ReferenceHandler serves the static tables the engine uses
type ReferenceHandler struct{}

// NewReferenceHandler creates a new reference handler
func NewReferenceHandler() *ReferenceHandler {
	return &ReferenceHandler{}
}

// Routes returns the reference routes
func (h *ReferenceHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/state-tax-rates", h.StateTaxRates)
	r.Get("/hotel-classes", h.HotelClasses)
	return r
}

// StateTaxRates handles GET /api/v1/reference/state-tax-rates
func (h *ReferenceHandler) StateTaxRates(w http.ResponseWriter, r *http.Request) {
	entries := comparables.StateTaxRates()
	resp := api.StateTaxRatesResponse{
		Rates: make([]api.StateTaxRate, 0, len(entries)),
		Count: len(entries),
	}
	for _, e := range entries {
		resp.Rates = append(resp.Rates, api.StateTaxRate{State: e.State, Rate: e.Rate})
	}
	render.JSON(w, r, resp)
}

// HotelClasses handles GET /api/v1/reference/hotel-classes
func (h *ReferenceHandler) HotelClasses(w http.ResponseWriter, r *http.Request) {
	classes := domain.AllHotelClasses()
	resp := api.HotelClassesResponse{Classes: make([]api.HotelClassInfo, 0, len(classes))}
	for _, c := range classes {
		adjacent := c.Adjacent()
		ranks := make([]int, len(adjacent))
		for i, a := range adjacent {
			ranks[i] = int(a)
		}
		resp.Classes = append(resp.Classes, api.HotelClassInfo{
			Rank:     int(c),
			Label:    c.Label(),
			Adjacent: ranks,
		})
	}
	render.JSON(w, r, resp)
}
