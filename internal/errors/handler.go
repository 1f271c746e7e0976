package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"hotelcomp/internal/comparables"
)

const internalDetail = "An unexpected error occurred while processing your request"

// ErrorHandler renders errors as RFC 7807 problems and logs them
type ErrorHandler struct {
	logger       *slog.Logger
	includeStack bool
}

// NewErrorHandler creates an error handler. includeStack adds stack traces
// to 5xx responses and is meant for development.
func NewErrorHandler(logger *slog.Logger, includeStack bool) *ErrorHandler {
	return &ErrorHandler{
		logger:       logger.With(slog.String("component", "error_handler")),
		includeStack: includeStack,
	}
}

// HandleError writes err as a problem response. A nil error writes nothing.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := middleware.GetReqID(r.Context())
	problem := h.ErrorToProblem(err, r).WithExtension("trace_id", reqID)

	level := slog.LevelWarn
	if problem.Status >= http.StatusInternalServerError {
		level = slog.LevelError
		if h.includeStack {
			problem.WithExtension("stack", string(debug.Stack()))
		}
	}
	h.logger.Log(r.Context(), level, "request failed",
		slog.String("error", err.Error()),
		slog.Int("status", problem.Status),
		slog.String("problem_type", problem.Type),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	_ = render.Render(w, r, problem)
}

// ErrorToProblem maps err to a problem document for request r
func (h *ErrorHandler) ErrorToProblem(err error, r *http.Request) *ProblemDetails {
	instance := r.URL.Path

	var (
		cfgErr   *comparables.ConfigurationError
		tooLarge *http.MaxBytesError
		apiErr   *APIError
		appErr   *AppError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return problemTimeout.with("The request took too long to process and was cancelled", instance)
	case errors.As(err, &cfgErr):
		return problemConfiguration.with(cfgErr.Error(), instance).
			WithExtension("field", cfgErr.Field).
			WithExtension("value", cfgErr.Value)
	case errors.As(err, &tooLarge):
		return problemPayloadTooLarge.with("The request body exceeds the maximum allowed size", instance).
			WithExtension("limit", tooLarge.Limit)
	case errors.As(err, &apiErr):
		return apiErrorToProblem(apiErr, instance)
	case errors.As(err, &appErr):
		return appErrorToProblem(appErr, instance)
	default:
		return problemInternal.with(internalDetail, instance)
	}
}

func appErrorToProblem(appErr *AppError, instance string) *ProblemDetails {
	kind, ok := appErrorKinds[appErr.Type]
	if !ok {
		return problemInternal.with(internalDetail, instance)
	}

	problem := kind.with(appErr.Message, instance)
	for k, v := range appErr.Context {
		problem.WithExtension(k, v)
	}
	return problem
}

func apiErrorToProblem(apiErr *APIError, instance string) *ProblemDetails {
	problemType, ok := apiErrorTypes[apiErr.ErrorCode]
	if !ok {
		problemType = TypeInternal
	}

	problem := NewProblemDetails(apiErr.StatusCode, problemType, http.StatusText(apiErr.StatusCode), apiErr.Message, instance).
		WithExtension("error_code", apiErr.ErrorCode)
	if apiErr.Details != nil {
		problem.WithExtension("details", apiErr.Details)
	}
	return problem
}

// HandlePanic logs a recovered panic and answers 500
func (h *ErrorHandler) HandlePanic(w http.ResponseWriter, r *http.Request, recovered interface{}) {
	reqID := middleware.GetReqID(r.Context())
	stack := string(debug.Stack())

	h.logger.ErrorContext(r.Context(), "panic recovered",
		slog.Any("panic", recovered),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("stack", stack),
	)

	problem := problemInternal.with("An unexpected error occurred", r.URL.Path).
		WithExtension("trace_id", reqID)
	if h.includeStack {
		problem.WithExtension("panic", fmt.Sprintf("%v", recovered))
		problem.WithExtension("stack", stack)
	}

	_ = render.Render(w, r, problem)
}

// NotFound answers unknown routes
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	problem := problemNotFound.with("The requested resource was not found", r.URL.Path).
		WithExtension("trace_id", middleware.GetReqID(r.Context()))
	_ = render.Render(w, r, problem)
}

// MethodNotAllowed answers known routes called with the wrong method
func (h *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	problem := problemMethodNotAllowed.with(fmt.Sprintf("Method %s is not allowed for this endpoint", r.Method), r.URL.Path).
		WithExtension("trace_id", middleware.GetReqID(r.Context()))
	_ = render.Render(w, r, problem)
}
