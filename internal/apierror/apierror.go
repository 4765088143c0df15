// Package apierror описывает классифицированные ошибки HTTP API: вид ошибки,
// HTTP-статус, машинный код и, для 405, список допустимых методов.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tempizhere/linkvault/internal/service"
)

// Kind - класс ошибки
type Kind int

const (
	KindUnknown Kind = iota
	KindClientInput
	KindStoreWrite
	KindRouting
	KindNotFound
	KindAccess
)

func (k Kind) String() string {
	switch k {
	case KindClientInput:
		return "client_input"
	case KindStoreWrite:
		return "store_write"
	case KindRouting:
		return "routing"
	case KindNotFound:
		return "not_found"
	case KindAccess:
		return "access"
	default:
		return "unknown"
	}
}

// Коды ошибок в ответе
const (
	CodeMissingID        = "MISSING_ID"
	CodeInvalidID        = "INVALID_ID"
	CodeEmptyBody        = "EMPTY_BODY"
	CodeInvalidBody      = "INVALID_BODY"
	CodeBodyTooLarge     = "BODY_TOO_LARGE"
	CodeStoreError       = "STORE_ERROR"
	CodeUnknownEndpoint  = "UNKNOWN_ENDPOINT"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeNotFound         = "NOT_FOUND"
	CodeAccessDenied     = "ACCESS_DENIED"
	CodeUnknownError     = "UNKNOWN_ERROR"
)

// Error - ошибка API с явным HTTP-статусом
type Error struct {
	Kind    Kind
	Status  int
	Code    string
	Message string
	// Allow перечисляет допустимые методы для ответа 405
	Allow []string
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AllowHeader возвращает значение заголовка Allow
func (e *Error) AllowHeader() string {
	return strings.Join(e.Allow, ", ")
}

// MissingID - в запросе нет обязательного идентификатора
func MissingID(message string) *Error {
	return &Error{Kind: KindClientInput, Status: http.StatusBadRequest, Code: CodeMissingID, Message: message}
}

// InvalidID - идентификатор не является целым числом
func InvalidID(raw string) *Error {
	return &Error{
		Kind:    KindClientInput,
		Status:  http.StatusBadRequest,
		Code:    CodeInvalidID,
		Message: fmt.Sprintf("Invalid ID: %s", raw),
	}
}

// EmptyBody - тело запроса не содержит данных для операции
func EmptyBody(message string) *Error {
	return &Error{Kind: KindClientInput, Status: http.StatusBadRequest, Code: CodeEmptyBody, Message: message}
}

// InvalidBody - тело запроса не удалось разобрать
func InvalidBody(err error) *Error {
	return &Error{
		Kind:    KindClientInput,
		Status:  http.StatusBadRequest,
		Code:    CodeInvalidBody,
		Message: "Invalid request body: " + err.Error(),
		Err:     err,
	}
}

// BodyTooLarge - тело запроса превышает допустимый размер
func BodyTooLarge(limit int64) *Error {
	return &Error{
		Kind:    KindClientInput,
		Status:  http.StatusRequestEntityTooLarge,
		Code:    CodeBodyTooLarge,
		Message: fmt.Sprintf("Request body exceeds %d bytes", limit),
	}
}

// UnknownEndpoint - неизвестный тип операции
func UnknownEndpoint(opType string) *Error {
	return &Error{
		Kind:    KindRouting,
		Status:  http.StatusNotFound,
		Code:    CodeUnknownEndpoint,
		Message: "Unknown endpoint type: " + opType,
	}
}

// MethodNotAllowed - метод не подходит для операции
func MethodNotAllowed(method string, allow ...string) *Error {
	return &Error{
		Kind:    KindRouting,
		Status:  http.StatusMethodNotAllowed,
		Code:    CodeMethodNotAllowed,
		Message: fmt.Sprintf("Method %s not allowed", method),
		Allow:   allow,
	}
}

// NotFound - запись не найдена
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
}

// AccessDenied - запрос отклонён проверкой доступа
func AccessDenied(message string) *Error {
	return &Error{Kind: KindAccess, Status: http.StatusForbidden, Code: CodeAccessDenied, Message: message}
}

// From классифицирует произвольную ошибку
func From(err error) *Error {
	if err == nil {
		return nil
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.Status == 0 {
			apiErr.Status = http.StatusInternalServerError
		}
		return apiErr
	}

	var writeErr *service.StoreWriteError
	switch {
	case errors.Is(err, service.ErrNotFound):
		return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Code: CodeNotFound, Message: "Record not found", Err: err}
	case errors.Is(err, service.ErrEmptyPatch):
		return &Error{Kind: KindClientInput, Status: http.StatusBadRequest, Code: CodeEmptyBody, Message: "Request body has no fields to update", Err: err}
	case errors.Is(err, service.ErrMissingItemRef), errors.Is(err, service.ErrMissingItemID):
		return &Error{Kind: KindClientInput, Status: http.StatusBadRequest, Code: CodeMissingID, Message: err.Error(), Err: err}
	case errors.As(err, &writeErr):
		return &Error{Kind: KindStoreWrite, Status: http.StatusInternalServerError, Code: CodeStoreError, Message: err.Error(), Err: err}
	default:
		return &Error{Kind: KindUnknown, Status: http.StatusInternalServerError, Code: CodeUnknownError, Message: err.Error(), Err: err}
	}
}
