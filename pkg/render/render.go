// Package render writes model results and error envelopes onto gin
// responses. Every handler funnels through here so the envelope shape
// stays identical across endpoints.
package render

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daisybio/SPONGE-web-backend-sub000/logger"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/apierr"
)

// JSON writes a successful payload.
func JSON(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Error writes the envelope for err with the status its kind maps to.
// Internal errors are logged here so handlers stay free of logging.
func Error(c *gin.Context, err error) {
	status := apierr.Status(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed: " + err.Error())
	}
	c.JSON(status, apierr.ToEnvelope(err))
}

// Result collapses the usual (payload, err) pair of a model call.
func Result(c *gin.Context, payload any, err error) {
	if err != nil {
		Error(c, err)
		return
	}
	JSON(c, payload)
}

// Marshal serializes a payload for cache storage.
func Marshal(payload any) ([]byte, error) {
	return json.Marshal(payload)
}

// RawJSON writes pre-serialized bytes, used on cache hits.
func RawJSON(c *gin.Context, data []byte) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// StreamArray writes a JSON array one element at a time, flushing after
// each element so clients start receiving long-form rows before the
// whole result is encoded. The written body is also assembled and
// returned so callers can cache it; a nil return means encoding failed
// mid-stream and the body must not be reused.
func StreamArray(c *gin.Context, n int, element func(i int) any) []byte {
	w := c.Writer
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	var body bytes.Buffer
	out := io.MultiWriter(w, &body)
	enc := json.NewEncoder(out)

	if _, err := io.WriteString(out, "["); err != nil {
		return nil
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			if _, err := io.WriteString(out, ","); err != nil {
				return nil
			}
		}
		if err := enc.Encode(element(i)); err != nil {
			logger.Error("stream element: " + err.Error())
			return nil
		}
		w.Flush()
	}
	if _, err := io.WriteString(out, "]"); err != nil {
		return nil
	}
	w.Flush()
	return body.Bytes()
}
