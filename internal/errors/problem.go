package errors

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"
)

// Problem type URIs
const (
	TypeValidation       = "/errors/validation"
	TypeNotFound         = "/errors/not-found"
	TypeRateLimit        = "/errors/rate-limit"
	TypeInternal         = "/errors/internal"
	TypeTimeout          = "/errors/timeout"
	TypePayloadTooLarge  = "/errors/payload-too-large"
	TypeUnsupportedMedia = "/errors/unsupported-media-type"
	TypeMethodNotAllowed = "/errors/method-not-allowed"

	TypeInvalidConfiguration = "/errors/comparison/invalid-configuration"
	TypeDatasetInvalid       = "/errors/dataset/invalid"
	TypeStorage              = "/errors/storage"
)

// ProblemDetails is an RFC 7807 problem document. Extensions are written
// as top-level members; the standard members take precedence.
type ProblemDetails struct {
	Type       string
	Title      string
	Status     int
	Detail     string
	Instance   string
	Extensions map[string]interface{}
}

// NewProblemDetails creates a problem document
func NewProblemDetails(status int, problemType, title, detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:     problemType,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: instance,
	}
}

// WithExtension sets an extension member and returns pd for chaining
func (pd *ProblemDetails) WithExtension(key string, value interface{}) *ProblemDetails {
	if pd.Extensions == nil {
		pd.Extensions = make(map[string]interface{})
	}
	pd.Extensions[key] = value
	return pd
}

// Render sets the response status for chi/render
func (pd *ProblemDetails) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, pd.Status)
	return nil
}

func (pd *ProblemDetails) MarshalJSON() ([]byte, error) {
	doc := make(map[string]interface{}, len(pd.Extensions)+5)
	for k, v := range pd.Extensions {
		doc[k] = v
	}

	doc["type"] = pd.Type
	doc["title"] = pd.Title
	doc["status"] = pd.Status
	if pd.Detail != "" {
		doc["detail"] = pd.Detail
	}
	if pd.Instance != "" {
		doc["instance"] = pd.Instance
	}
	return json.Marshal(doc)
}

// problemKind is the fixed part of a problem: status, type and title
type problemKind struct {
	status      int
	problemType string
	title       string
}

func (k problemKind) with(detail, instance string) *ProblemDetails {
	return NewProblemDetails(k.status, k.problemType, k.title, detail, instance)
}

var (
	problemValidation       = problemKind{http.StatusBadRequest, TypeValidation, "Validation Failed"}
	problemConfiguration    = problemKind{http.StatusBadRequest, TypeInvalidConfiguration, "Invalid Comparison Configuration"}
	problemDataset          = problemKind{http.StatusUnprocessableEntity, TypeDatasetInvalid, "Invalid Dataset"}
	problemNotFound         = problemKind{http.StatusNotFound, TypeNotFound, "Resource Not Found"}
	problemMethodNotAllowed = problemKind{http.StatusMethodNotAllowed, TypeMethodNotAllowed, "Method Not Allowed"}
	problemPayloadTooLarge  = problemKind{http.StatusRequestEntityTooLarge, TypePayloadTooLarge, "Payload Too Large"}
	problemTimeout          = problemKind{http.StatusGatewayTimeout, TypeTimeout, "Request Timeout"}
	problemStorage          = problemKind{http.StatusInternalServerError, TypeStorage, "Storage Error"}
	problemInternal         = problemKind{http.StatusInternalServerError, TypeInternal, "Internal Server Error"}
)

// appErrorKinds maps AppError types to their problem; unknown types are
// reported as internal errors without detail
var appErrorKinds = map[ErrorType]problemKind{
	ErrTypeParsing:    problemDataset,
	ErrTypeValidation: problemValidation,
	ErrTypeNotFound:   problemNotFound,
	ErrTypeStorage:    problemStorage,
}

// apiErrorTypes maps APIError codes to problem types
var apiErrorTypes = map[string]string{
	CodeInvalidRequest:   TypeValidation,
	CodeValidationFailed: TypeValidation,
}
