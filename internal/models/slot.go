package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// UnsetSlot - значение, которым незаданный слот классификации хранится в таблице
const UnsetSlot int64 = -1

// Slot - слот категории или тега. Нулевое значение означает «не задан».
// Значение -1 в хранилище и отсутствие поля в запросе читаются одинаково.
// Present отмечает, что поле пришло в запросе, даже если значение -1 или null:
// от этого зависит, пишется ли строка классификации.
type Slot struct {
	Value   int64
	Valid   bool
	Present bool
}

// SlotOf возвращает переданный слот; -1 превращается в незаданный
func SlotOf(v int64) Slot {
	if v == UnsetSlot {
		return Slot{Present: true}
	}
	return Slot{Value: v, Valid: true, Present: true}
}

// StoreValue возвращает значение для записи в хранилище
func (s Slot) StoreValue() int64 {
	if !s.Valid {
		return UnsetSlot
	}
	return s.Value
}

// MarshalJSON сериализует незаданный слот как null
func (s Slot) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(s.Value, 10)), nil
}

// UnmarshalJSON принимает число, числовую строку или null
func (s *Slot) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = Slot{Present: true}
		return nil
	}
	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		raw = strings.TrimSpace(str)
		if raw == "" {
			*s = Slot{Present: true}
			return nil
		}
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid slot value %q", raw)
	}
	*s = SlotOf(v)
	return nil
}
