package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "hotelcomp/internal/errors"
	"hotelcomp/internal/files"
	"hotelcomp/internal/services"
)

// ReportListResponse lists the saved reports
type ReportListResponse struct {
	Reports []files.FileInfo `json:"reports"`
	Count   int              `json:"count"`
}

// ReportHandler lists and downloads saved reports
type ReportHandler struct {
	service      *services.ComparisonService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewReportHandler creates a new report handler
func NewReportHandler(service *services.ComparisonService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ReportHandler {
	return &ReportHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "report_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the report routes
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/latest", h.Latest)
	r.Get("/{name}", h.Download)
	return r
}

// List handles GET /api/v1/reports
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.ListReports(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, ReportListResponse{Reports: reports, Count: len(reports)})
}

// Download handles GET /api/v1/reports/{name}
func (h *ReportHandler) Download(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.ResolveReport(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.serve(w, r, info)
}

// Latest handles GET /api/v1/reports/latest
func (h *ReportHandler) Latest(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.LatestReport(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.serve(w, r, info)
}

func (h *ReportHandler) serve(w http.ResponseWriter, r *http.Request, info files.FileInfo) {
	f, err := os.Open(info.Path)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewStorageError("failed to open report", err))
		return
	}
	defer f.Close()

	contentType := ContentTypeXLSX
	if info.Kind == files.KindCSV {
		contentType = ContentTypeCSV
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", attachment(info.Name))
	http.ServeContent(w, r, info.Name, info.ModTime, f)
}
