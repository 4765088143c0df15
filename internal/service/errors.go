package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tempizhere/linkvault/internal/store"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrMissingSourceID = errors.New("store returned no id for the created link")
	ErrEmptyPatch      = errors.New("nothing to update")
	ErrNoRowReturned   = errors.New("store returned no row")
	ErrMissingItemRef  = errors.New("id_list and id_src are required")
	ErrMissingItemID   = errors.New("item id is required")
)

// Шаги обращения к хранилищу, попадающие в StoreWriteError
const (
	StepMain           = "main"
	StepStatus         = "status"
	StepClassification = "classification"
	StepSelect         = "select"
	StepInsert         = "insert"
	StepUpdate         = "update"
	StepDelete         = "delete"
)

// StoreWriteError описывает неудачный вызов хранилища.
// Committed перечисляет таблицы, запись в которые уже состоялась в рамках той же операции;
// Compensated сообщает, что эти записи были удалены.
type StoreWriteError struct {
	Step        string
	Table       store.Table
	Committed   []store.Table
	Compensated bool
	Err         error
}

func (e *StoreWriteError) Error() string {
	msg := fmt.Sprintf("%s on %s failed: %v", e.Step, e.Table, e.Err)
	if len(e.Committed) > 0 && !e.Compensated {
		names := make([]string, len(e.Committed))
		for i, t := range e.Committed {
			names[i] = string(t)
		}
		msg += " (already written: " + strings.Join(names, ", ") + ")"
	}
	return msg
}

func (e *StoreWriteError) Unwrap() error {
	return e.Err
}
