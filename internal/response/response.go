// Package response формирует единый JSON-конверт ответов API.
package response

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/tempizhere/linkvault/internal/apierror"
)

// TimestampLayout - ISO 8601 с миллисекундами в UTC
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Success - конверт успешного ответа
type Success struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Failure - конверт ответа с ошибкой
type Failure struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Writer пишет ответы в конверте с меткой времени
type Writer struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewWriter создаёт Writer; now задаёт источник времени, nil означает time.Now
func NewWriter(logger *zap.Logger, now func() time.Time) *Writer {
	if now == nil {
		now = time.Now
	}
	return &Writer{logger: logger, now: now}
}

func (rw *Writer) timestamp() string {
	return rw.now().UTC().Format(TimestampLayout)
}

// JSON пишет произвольное значение как JSON-ответ
func (rw *Writer) JSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		rw.logger.Error("Failed to encode JSON", zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		if _, err := w.Write([]byte(`{"success":false,"error":"Failed to encode JSON","code":"UNKNOWN_ERROR"}`)); err != nil {
			rw.logger.Warn("Failed to write response", zap.Error(err))
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		rw.logger.Warn("Failed to write response", zap.Error(err))
	}
}

// Success пишет успешный ответ
func (rw *Writer) Success(w http.ResponseWriter, status int, data any, message string) {
	rw.JSON(w, status, Success{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: rw.timestamp(),
	})
}

// Error классифицирует ошибку и пишет ответ с соответствующим статусом
func (rw *Writer) Error(w http.ResponseWriter, err error) {
	apiErr := apierror.From(err)
	if len(apiErr.Allow) > 0 {
		w.Header().Set("Allow", apiErr.AllowHeader())
	}
	if apiErr.Status >= http.StatusInternalServerError {
		rw.logger.Error("Request failed",
			zap.String("kind", apiErr.Kind.String()),
			zap.String("code", apiErr.Code),
			zap.Error(err),
		)
	} else {
		rw.logger.Debug("Request rejected",
			zap.String("kind", apiErr.Kind.String()),
			zap.String("code", apiErr.Code),
			zap.Int("status", apiErr.Status),
		)
	}
	rw.JSON(w, apiErr.Status, Failure{
		Success:   false,
		Error:     apiErr.Error(),
		Code:      apiErr.Code,
		Timestamp: rw.timestamp(),
	})
}
