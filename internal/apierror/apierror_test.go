package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tempizhere/linkvault/internal/service"
	"github.com/tempizhere/linkvault/internal/store"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   Kind
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "api error passes through",
			err:        MissingID("Link ID is required"),
			wantKind:   KindClientInput,
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeMissingID,
			wantMsg:    "Link ID is required",
		},
		{
			name:       "wrapped api error",
			err:        fmt.Errorf("dispatch: %w", UnknownEndpoint("foo")),
			wantKind:   KindRouting,
			wantStatus: http.StatusNotFound,
			wantCode:   CodeUnknownEndpoint,
			wantMsg:    "Unknown endpoint type: foo",
		},
		{
			name:       "not found",
			err:        service.ErrNotFound,
			wantKind:   KindNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   CodeNotFound,
			wantMsg:    "Record not found",
		},
		{
			name:       "empty patch",
			err:        service.ErrEmptyPatch,
			wantKind:   KindClientInput,
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeEmptyBody,
		},
		{
			name:       "store write",
			err:        &service.StoreWriteError{Step: service.StepStatus, Table: store.TableLinkStatus, Err: errors.New("connection reset")},
			wantKind:   KindStoreWrite,
			wantStatus: http.StatusInternalServerError,
			wantCode:   CodeStoreError,
			wantMsg:    "status on sub_main_table failed: connection reset",
		},
		{
			name:       "store returned link without id",
			err:        &service.StoreWriteError{Step: service.StepMain, Table: store.TableLinks, Err: service.ErrMissingSourceID},
			wantKind:   KindStoreWrite,
			wantStatus: http.StatusInternalServerError,
			wantCode:   CodeStoreError,
		},
		{
			name:       "body too large",
			err:        BodyTooLarge(1024),
			wantKind:   KindClientInput,
			wantStatus: http.StatusRequestEntityTooLarge,
			wantCode:   CodeBodyTooLarge,
			wantMsg:    "Request body exceeds 1024 bytes",
		},
		{
			name:       "unclassified",
			err:        errors.New("something odd"),
			wantKind:   KindUnknown,
			wantStatus: http.StatusInternalServerError,
			wantCode:   CodeUnknownError,
			wantMsg:    "something odd",
		},
		{
			name:       "api error without status",
			err:        &Error{Message: "bare"},
			wantKind:   KindUnknown,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "bare",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := From(tt.err)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantCode, got.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, got.Error())
			}
		})
	}

	assert.Nil(t, From(nil))
}

func TestMethodNotAllowed(t *testing.T) {
	err := MethodNotAllowed(http.MethodPost, http.MethodGet)
	assert.Equal(t, http.StatusMethodNotAllowed, err.Status)
	assert.Equal(t, "GET", err.AllowHeader())
	assert.Equal(t, "Method POST not allowed", err.Error())

	err = MethodNotAllowed(http.MethodPut, http.MethodGet, http.MethodPost)
	assert.Equal(t, "GET, POST", err.AllowHeader())
}
