package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"hotelcomp/internal/config"
	apierrors "hotelcomp/internal/errors"
	"hotelcomp/internal/middleware"
	"hotelcomp/internal/services"
	api "hotelcomp/pkg/contracts/api/v1"
)

// Content types of the report downloads
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv; charset=utf-8"
)

// multipartMemory is how much of an upload is buffered in memory before
// spilling to temporary files
const multipartMemory = 8 << 20

// ComparisonHandler handles comparison runs submitted as JSON or as an
// uploaded workbook
type ComparisonHandler struct {
	service      *services.ComparisonService
	validator    *middleware.Validator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewComparisonHandler creates a new comparison handler
func NewComparisonHandler(service *services.ComparisonService, validator *middleware.Validator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ComparisonHandler {
	return &ComparisonHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("component", "comparison_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the comparison routes
func (h *ComparisonHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(middleware.ContentTypeValidator("application/json")).Post("/", h.Compare)
	r.With(middleware.ContentTypeValidator("multipart/form-data")).Post("/workbook", h.CompareWorkbook)

	return r
}

// Compare handles POST /api/v1/comparisons
func (h *ComparisonHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var req api.ComparisonRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, decodeError(err))
		return
	}

	if unresolved := services.PrepareRecords(req.Records); len(unresolved) > 0 {
		h.errorHandler.HandleError(w, r, services.UnresolvedClassError(req.Records, unresolved))
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	out, err := h.service.Compare(r.Context(), services.RunRequest{
		Records:    req.Records,
		Tolerance:  req.Tolerance,
		MaxResults: req.MaxResults,
		Addresses:  req.Addresses,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, api.ComparisonResponse{
		RunID:            out.Run.Summary.RunID,
		Summary:          out.Run.Summary,
		Results:          out.Run.Results,
		UnknownAddresses: out.UnknownAddresses,
	})
}

// CompareWorkbook handles POST /api/v1/comparisons/workbook. The response
// is the results workbook, or the preview CSV with ?format=csv. With
// ?save=true the workbook is also kept in the reports directory.
func (h *ComparisonHandler) CompareWorkbook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		h.errorHandler.HandleError(w, r, decodeError(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "a dataset file is required"))
		return
	}
	defer file.Close()

	form, err := parseUploadForm(r, header.Filename)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(form); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format != "" && format != "xlsx" && format != "csv" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format", "format must be xlsx or csv"))
		return
	}

	ds, err := h.service.LoadDataset(r.Context(), file, form.FileName, form.Sheet)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	out, err := h.service.Compare(r.Context(), services.RunRequest{
		Records:    ds.Records,
		Tolerance:  form.Tolerance,
		MaxResults: form.MaxResults,
		Addresses:  form.Addresses,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "workbook comparison complete",
		slog.String("file", form.FileName),
		slog.Int("rows_loaded", ds.Report.Loaded),
		slog.String("run_id", out.Run.Summary.RunID),
	)

	if save, _ := strconv.ParseBool(r.URL.Query().Get("save")); save {
		path, err := h.service.SaveWorkbook(r.Context(), "", out.Run)
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		w.Header().Set("X-Report-Name", filepath.Base(path))
	}

	name := config.ReportFileName(out.Run.Summary.RunID, time.Now())
	w.Header().Set("X-Run-ID", out.Run.Summary.RunID)
	if len(out.UnknownAddresses) > 0 {
		w.Header().Set("X-Unknown-Addresses", strconv.Itoa(len(out.UnknownAddresses)))
	}

	if format == "csv" {
		name = strings.TrimSuffix(name, ".xlsx") + "_preview.csv"
		w.Header().Set("Content-Type", ContentTypeCSV)
		w.Header().Set("Content-Disposition", attachment(name))
		if err := h.service.WritePreview(r.Context(), w, out.Run); err != nil {
			h.logger.ErrorContext(r.Context(), "failed to stream preview", slog.String("error", err.Error()))
		}
		return
	}

	w.Header().Set("Content-Type", ContentTypeXLSX)
	w.Header().Set("Content-Disposition", attachment(name))
	if err := h.service.WriteWorkbook(r.Context(), w, out.Run); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to stream workbook", slog.String("error", err.Error()))
	}
}

// parseUploadForm reads the non-file multipart fields
func parseUploadForm(r *http.Request, fileName string) (*api.WorkbookUploadForm, error) {
	form := &api.WorkbookUploadForm{
		FileName:  fileName,
		Sheet:     strings.TrimSpace(r.FormValue("sheet")),
		Addresses: r.MultipartForm.Value["address"],
	}

	if v := strings.TrimSpace(r.FormValue("tolerance")); v != "" {
		tol, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, apierrors.ErrValidation("tolerance", fmt.Sprintf("tolerance %q is not a number", v))
		}
		form.Tolerance = &tol
	}

	if v := strings.TrimSpace(r.FormValue("max_results")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, apierrors.ErrValidation("max_results", fmt.Sprintf("max_results %q is not an integer", v))
		}
		form.MaxResults = &n
	}

	return form, nil
}

// decodeError passes body size errors through so they map to 413
func decodeError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	return apierrors.InvalidRequestWithError(err)
}

func attachment(name string) string {
	return fmt.Sprintf("attachment; filename=%q", name)
}
