package app

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/tempizhere/linkvault/internal/apierror"
	"github.com/tempizhere/linkvault/internal/middleware"
	"github.com/tempizhere/linkvault/internal/models"
)

// OpKind - операция диспетчера, выбирается параметром type
type OpKind int

const (
	OpGetLinks OpKind = iota
	OpGetLink
	OpCreateLink
	OpUpdateLink
	OpDeleteLink
	OpGetLists
	OpGetList
	OpCreateList
	OpUpdateList
	OpDeleteList
	OpGetCollections
	OpGetCollection
	OpCreateCollection
	OpUpdateCollection
	OpDeleteCollection
	OpGetListItems
	OpAddListItem
	OpRemoveListItem

	opCount
)

// request - разобранные параметры вызова операции
type request struct {
	w      http.ResponseWriter
	r      *http.Request
	id     int64
	userID string
}

// result - успешный результат операции
type result struct {
	status  int
	data    any
	message string
}

// operation описывает одну строку таблицы диспетчера
type operation struct {
	name   string
	method string
	// idParam - обязательный параметр запроса с идентификатором, "" если не нужен
	idParam string
	// missingID - текст ошибки при отсутствии идентификатора
	missingID string
	run       func(a *App, req request) (result, error)
}

var operations = [opCount]operation{
	OpGetLinks:         {name: "getLinks", method: http.MethodGet, run: (*App).getLinks},
	OpGetLink:          {name: "getLink", method: http.MethodGet, idParam: "id", missingID: "Link ID is required", run: (*App).getLink},
	OpCreateLink:       {name: "createLink", method: http.MethodPost, run: (*App).createLinkOp},
	OpUpdateLink:       {name: "updateLink", method: http.MethodPut, idParam: "id", run: (*App).updateLink},
	OpDeleteLink:       {name: "deleteLink", method: http.MethodDelete, idParam: "id", run: (*App).deleteLink},
	OpGetLists:         {name: "getLists", method: http.MethodGet, run: (*App).getLists},
	OpGetList:          {name: "getList", method: http.MethodGet, idParam: "id", missingID: "List ID is required", run: (*App).getList},
	OpCreateList:       {name: "createList", method: http.MethodPost, run: (*App).createList},
	OpUpdateList:       {name: "updateList", method: http.MethodPut, idParam: "id", run: (*App).updateList},
	OpDeleteList:       {name: "deleteList", method: http.MethodDelete, idParam: "id", run: (*App).deleteList},
	OpGetCollections:   {name: "getCollections", method: http.MethodGet, run: (*App).getCollections},
	OpGetCollection:    {name: "getCollection", method: http.MethodGet, idParam: "id", missingID: "Collection ID is required", run: (*App).getCollection},
	OpCreateCollection: {name: "createCollection", method: http.MethodPost, run: (*App).createCollection},
	OpUpdateCollection: {name: "updateCollection", method: http.MethodPut, idParam: "id", run: (*App).updateCollection},
	OpDeleteCollection: {name: "deleteCollection", method: http.MethodDelete, idParam: "id", run: (*App).deleteCollection},
	OpGetListItems:     {name: "getListItems", method: http.MethodGet, idParam: "listId", missingID: "List ID is required", run: (*App).getListItems},
	OpAddListItem:      {name: "addListItem", method: http.MethodPost, run: (*App).addListItem},
	OpRemoveListItem:   {name: "removeListItem", method: http.MethodDelete, idParam: "id", run: (*App).removeListItem},
}

var opsByName = func() map[string]OpKind {
	m := make(map[string]OpKind, opCount)
	for i, op := range operations {
		m[op.name] = OpKind(i)
	}
	return m
}()

func (k OpKind) String() string {
	if k < 0 || k >= opCount {
		return "unknown"
	}
	return operations[k].name
}

// Method возвращает HTTP-метод операции
func (k OpKind) Method() string {
	if k < 0 || k >= opCount {
		return ""
	}
	return operations[k].method
}

// ParseOpKind находит операцию по имени
func ParseOpKind(name string) (OpKind, bool) {
	k, ok := opsByName[name]
	return k, ok
}

// HandleQuery обрабатывает /api/v1/main/doQueries?type=<op>&id=<id>.
// Порядок проверок: id для PUT/DELETE, известность типа, метод, обязательный id, формат id.
func (a *App) HandleQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opType := q.Get("type")

	if (r.Method == http.MethodPut || r.Method == http.MethodDelete) && q.Get("id") == "" {
		a.rw.Error(w, apierror.MissingID("ID is required for update/delete operations"))
		return
	}

	kind, ok := ParseOpKind(opType)
	if !ok {
		a.rw.Error(w, apierror.UnknownEndpoint(opType))
		return
	}
	op := operations[kind]

	if r.Method != op.method {
		a.rw.Error(w, apierror.MethodNotAllowed(r.Method, op.method))
		return
	}

	req := request{w: w, r: r}
	if op.idParam != "" {
		raw := q.Get(op.idParam)
		if raw == "" {
			msg := op.missingID
			if msg == "" {
				msg = op.idParam + " is required"
			}
			a.rw.Error(w, apierror.MissingID(msg))
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			a.rw.Error(w, apierror.InvalidID(raw))
			return
		}
		req.id = id
	}
	req.userID, _ = middleware.GetUserID(r)

	a.logger.Debug("Dispatching operation",
		zap.String("type", op.name),
		zap.String("method", r.Method),
		zap.Int64("id", req.id))

	res, err := op.run(a, req)
	if err != nil {
		a.rw.Error(w, err)
		return
	}
	if res.status == 0 {
		res.status = http.StatusOK
	}
	a.rw.Success(w, res.status, res.data, res.message)
}

// createLink создаёт ссылку со связанными записями; владелец по умолчанию - текущий пользователь
func (a *App) createLink(r *http.Request, req models.CreateLinkRequest) (models.Created, error) {
	if req.UserID == nil {
		if userID, ok := middleware.GetUserID(r); ok {
			req.UserID = &userID
		}
	}
	return a.svc.CreateLinkWithAssociations(r.Context(), req)
}
