package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tempizhere/linkvault/internal/apierror"
)

// maxBodySize ограничивает размер тела запроса
const maxBodySize = 1 << 20

// BodyPolicy определяет, как обрабатывается синтаксически неверное JSON-тело
type BodyPolicy int

const (
	// BodyLenient подставляет пустой объект вместо неразборчивого тела
	BodyLenient BodyPolicy = iota
	// BodyStrict отвечает 400 INVALID_BODY
	BodyStrict
)

func (p BodyPolicy) String() string {
	if p == BodyStrict {
		return "strict"
	}
	return "lenient"
}

// ParseBodyPolicy разбирает название политики
func ParseBodyPolicy(s string) (BodyPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lenient":
		return BodyLenient, nil
	case "strict":
		return BodyStrict, nil
	default:
		return BodyLenient, fmt.Errorf("unknown body policy %q", s)
	}
}

// decodeBody читает JSON-тело запроса. Пустое тело даёт нулевое значение.
// Тело больше maxBodySize отклоняется до применения policy.
// Синтаксические ошибки обрабатываются по policy, ошибки типов всегда возвращаются клиенту.
func decodeBody[T any](w http.ResponseWriter, r *http.Request, policy BodyPolicy) (T, error) {
	var v T
	if r.Body == nil {
		return v, nil
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return v, apierror.BodyTooLarge(tooLarge.Limit)
		}
		return v, apierror.InvalidBody(err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return v, nil
	}

	if err := json.Unmarshal(data, &v); err != nil {
		var syntaxErr *json.SyntaxError
		if (errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF)) && policy == BodyLenient {
			var zero T
			return zero, nil
		}
		return v, apierror.InvalidBody(err)
	}
	return v, nil
}
