package app

import (
	"net/http"

	"github.com/tempizhere/linkvault/internal/models"
)

// Ссылки

func (a *App) getLinks(req request) (result, error) {
	links, err := a.svc.ListLinksWithAssociations(req.r.Context())
	return result{data: links}, err
}

func (a *App) getLink(req request) (result, error) {
	link, err := a.svc.GetLinkWithAssociations(req.r.Context(), req.id)
	return result{data: link}, err
}

func (a *App) createLinkOp(req request) (result, error) {
	body, err := decodeBody[models.CreateLinkRequest](req.w, req.r, a.bodyPolicy)
	if err != nil {
		return result{}, err
	}
	created, err := a.createLink(req.r, body)
	return result{status: http.StatusCreated, data: created, message: "Link created"}, err
}

func (a *App) updateLink(req request) (result, error) {
	body, err := decodeBody[models.LinkInput](req.w, req.r, a.bodyPolicy)
	if err != nil {
		return result{}, err
	}
	link, err := a.svc.UpdateLink(req.r.Context(), req.id, body)
	return result{data: link}, err
}

func (a *App) deleteLink(req request) (result, error) {
	return result{message: "Link deleted"}, a.svc.DeleteLink(req.r.Context(), req.id)
}

// Списки

func (a *App) getLists(req request) (result, error) {
	lists, err := a.svc.ListLists(req.r.Context())
	return result{data: lists}, err
}

func (a *App) getList(req request) (result, error) {
	list, err := a.svc.GetList(req.r.Context(), req.id)
	return result{data: list}, err
}

func (a *App) createList(req request) (result, error) {
	body, err := decodeBody[models.ListInput](req.w, req.r, a.bodyPolicy)
	if err != nil {
		return result{}, err
	}
	list, err := a.svc.CreateList(req.r.Context(), body, req.userID)
	return result{status: http.StatusCreated, data: list, message: "List created"}, err
}

func (a *App) updateList(req request) (result, error) {
	body, err := decodeBody[models.ListInput](req.w, req.r, a.bodyPolicy)
	if err != nil {
		return result{}, err
	}
	list, err := a.svc.UpdateList(req.r.Context(), req.id, body)
	return result{data: list}, err
}

func (a *App) deleteList(req request) (result, error) {
	return result{message: "List deleted"}, a.svc.DeleteList(req.r.Context(), req.id)
}

// Коллекции

func (a *App) getCollections(req request) (result, error) {
	collections, err := a.svc.ListCollections(req.r.Context())
	return result{data: collections}, err
}

func (a *App) getCollection(req request) (result, error) {
	collection, err := a.svc.GetCollection(req.r.Context(), req.id)
	return result{data: collection}, err
}

func (a *App) createCollection(req request) (result, error) {
	body, err := decodeBody[models.CollectionInput](req.w, req.r, a.bodyPolicy)
	if err != nil {
		return result{}, err
	}
	collection, err := a.svc.CreateCollection(req.r.Context(), body, req.userID)
	return result{status: http.StatusCreated, data: collection, message: "Collection created"}, err
}

func (a *App) updateCollection(req request) (result, error) {
	body, err := decodeBody[models.CollectionInput](req.w, req.r, a.bodyPolicy)
	if err != nil {
		return result{}, err
	}
	collection, err := a.svc.UpdateCollection(req.r.Context(), req.id, body)
	return result{data: collection}, err
}

func (a *App) deleteCollection(req request) (result, error) {
	return result{message: "Collection deleted"}, a.svc.DeleteCollection(req.r.Context(), req.id)
}

// Элементы списков

func (a *App) getListItems(req request) (result, error) {
	items, err := a.svc.ListItems(req.r.Context(), req.id)
	return result{data: items}, err
}

func (a *App) addListItem(req request) (result, error) {
	body, err := decodeBody[models.ListItemInput](req.w, req.r, a.bodyPolicy)
	if err != nil {
		return result{}, err
	}
	item, err := a.svc.AddListItem(req.r.Context(), body)
	return result{status: http.StatusCreated, data: item, message: "Item added"}, err
}

func (a *App) removeListItem(req request) (result, error) {
	return result{message: "Item removed"}, a.svc.RemoveListItem(req.r.Context(), req.id)
}
