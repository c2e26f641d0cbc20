package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds of the service. Handlers never branch on error strings, only
// on these sentinels (via errors.Is).
var (
	ErrMissingIdentifier   = errors.New("missing identifier")
	ErrAmbiguousIdentifier = errors.New("ambiguous identifier")
	ErrNotFound            = errors.New("not found")
	ErrScopeEmpty          = errors.New("empty scope")
	ErrBadSort             = errors.New("bad sort key")
	ErrBadDirection        = errors.New("bad sort direction")
	ErrLimitTooHigh        = errors.New("limit too high")
	ErrNoComparison        = errors.New("no comparison")
	ErrAmbiguousComparison = errors.New("ambiguous comparison")
	ErrPredictorFailed     = errors.New("predictor failed")
	ErrNumericalFailed     = errors.New("numerical routine failed")
)

// Envelope is the body shape shared by the no-content and bad-request
// responses. The front-end keys off Status/Title, so the shape is frozen.
type Envelope struct {
	Detail string `json:"detail"`
	Status int    `json:"status"`
	Title  string `json:"title"`
	Type   string `json:"type"`
	Data   []any  `json:"data"`
}

func NewEnvelope(status int, title, detail string) Envelope {
	return Envelope{
		Detail: detail,
		Status: status,
		Title:  title,
		Type:   "about:blank",
		Data:   []any{},
	}
}

// Status maps an error kind to the HTTP status of its envelope. "Valid
// request, nothing matched" is deliberately a 200 no-content, not a 404.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoComparison):
		return http.StatusOK
	case errors.Is(err, ErrScopeEmpty),
		errors.Is(err, ErrMissingIdentifier),
		errors.Is(err, ErrAmbiguousIdentifier),
		errors.Is(err, ErrBadSort),
		errors.Is(err, ErrBadDirection),
		errors.Is(err, ErrLimitTooHigh),
		errors.Is(err, ErrAmbiguousComparison):
		return http.StatusBadRequest
	case errors.Is(err, ErrPredictorFailed), errors.Is(err, ErrNumericalFailed):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// ToEnvelope renders err into the envelope the HTTP layer writes out.
func ToEnvelope(err error) Envelope {
	status := Status(err)
	switch status {
	case http.StatusOK:
		return NewEnvelope(status, "No Content", err.Error())
	case http.StatusBadRequest:
		return NewEnvelope(status, "Bad Request", err.Error())
	default:
		return NewEnvelope(status, "Internal Server Error", err.Error())
	}
}

// NotFoundf wraps ErrNotFound with a caller facing detail message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// BadRequestf wraps kind (one of the 400 sentinels) with a detail message.
func BadRequestf(kind error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}

// NoComparisonf wraps ErrNoComparison with a caller facing detail message.
func NoComparisonf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNoComparison)
}
