package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"hotelcomp/internal/dataprocessing"
	apierrors "hotelcomp/internal/errors"
	"hotelcomp/internal/middleware"
	"hotelcomp/internal/services"
	api "hotelcomp/pkg/contracts/api/v1"
)

// PropertyHandler serves lookups over a submitted dataset
type PropertyHandler struct {
	service      *services.ComparisonService
	validator    *middleware.Validator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(service *services.ComparisonService, validator *middleware.Validator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *PropertyHandler {
	return &PropertyHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("component", "property_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the property routes
func (h *PropertyHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.ContentTypeValidator("application/json"))
	r.Post("/search", h.Search)
	return r
}

// Search handles POST /api/v1/properties/search
func (h *PropertyHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req api.AddressSearchRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, decodeError(err))
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	threshold := dataprocessing.DefaultSearchThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	matches, err := h.service.Search(r.Context(), req.Records, req.Query, threshold)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	resp := api.AddressSearchResponse{
		Query:     req.Query,
		Threshold: threshold,
		Matches:   make([]api.AddressMatch, 0, len(matches)),
	}
	for _, m := range matches {
		resp.Matches = append(resp.Matches, api.AddressMatch{
			Address:     m.Record.Address,
			State:       m.Record.State,
			County:      m.Record.County,
			ProjectName: m.Record.ProjectName,
			OwnerName:   m.Record.OwnerName,
			Score:       m.Score,
		})
	}

	render.JSON(w, r, resp)
}
