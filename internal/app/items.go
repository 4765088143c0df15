package app

import (
	"net/http"
	"strconv"

	"github.com/tempizhere/linkvault/internal/apierror"
	"github.com/tempizhere/linkvault/internal/models"
)

// HandleListItems обрабатывает /api/v1/dev/lists/items:
// GET ?listId= - элементы списка, POST {id_list, id_src} - добавление, DELETE {itemId} - удаление
func (a *App) HandleListItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		raw := r.URL.Query().Get("listId")
		if raw == "" {
			a.rw.Error(w, apierror.MissingID("List ID is required"))
			return
		}
		listID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			a.rw.Error(w, apierror.InvalidID(raw))
			return
		}
		items, err := a.svc.ListItems(ctx, listID)
		if err != nil {
			a.rw.Error(w, err)
			return
		}
		a.rw.Success(w, http.StatusOK, items, "")

	case http.MethodPost:
		in, err := decodeBody[models.ListItemInput](w, r, a.bodyPolicy)
		if err != nil {
			a.rw.Error(w, err)
			return
		}
		item, err := a.svc.AddListItem(ctx, in)
		if err != nil {
			a.rw.Error(w, err)
			return
		}
		a.rw.Success(w, http.StatusCreated, item, "Item added")

	case http.MethodDelete:
		in, err := decodeBody[models.RemoveItemRequest](w, r, a.bodyPolicy)
		if err != nil {
			a.rw.Error(w, err)
			return
		}
		if err := a.svc.RemoveListItem(ctx, in.ItemID); err != nil {
			a.rw.Error(w, err)
			return
		}
		a.rw.Success(w, http.StatusOK, nil, "Item removed")

	default:
		a.rw.Error(w, apierror.MethodNotAllowed(r.Method, http.MethodGet, http.MethodPost, http.MethodDelete))
	}
}
