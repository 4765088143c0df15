// Package client - типизированный HTTP-клиент диспетчера операций и
// наблюдаемые кэши, которые он обновляет после изменений.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tempizhere/linkvault/internal/models"
)

// APIError - ответ сервера с success=false
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// envelope - общий конверт ответа
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

// Client обращается к /api/v1/main/doQueries
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// Option настраивает Client
type Option func(*Client)

// WithHTTPClient задаёт http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken задаёт JWT, передаваемый в заголовке Authorization
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New создаёт клиента для сервера по адресу baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// query выполняет операцию диспетчера и декодирует data в out (если out не nil)
func (c *Client) query(ctx context.Context, method, opType string, params url.Values, body, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("type", opType)
	endpoint := c.baseURL + "/api/v1/main/doQueries?" + params.Encode()

	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			return fmt.Errorf("encode %s body: %w", opType, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, &payload)
	if err != nil {
		return fmt.Errorf("build %s request: %w", opType, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", opType, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode %s response: %w", opType, err)
	}
	if !env.Success {
		return &APIError{Status: resp.StatusCode, Code: env.Code, Message: env.Error}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode %s data: %w", opType, err)
		}
	}
	return nil
}

func idParams(name string, id int64) url.Values {
	return url.Values{name: []string{strconv.FormatInt(id, 10)}}
}

// Links возвращает все ссылки со связанными записями
func (c *Client) Links(ctx context.Context) ([]models.LinkView, error) {
	var links []models.LinkView
	err := c.query(ctx, http.MethodGet, "getLinks", nil, nil, &links)
	return links, err
}

// Link возвращает ссылку по id
func (c *Client) Link(ctx context.Context, id int64) (models.LinkView, error) {
	var link models.LinkView
	err := c.query(ctx, http.MethodGet, "getLink", idParams("id", id), nil, &link)
	return link, err
}

// CreateLink создаёт ссылку со статусом и классификацией
func (c *Client) CreateLink(ctx context.Context, req models.CreateLinkRequest) (models.Created, error) {
	var created models.Created
	err := c.query(ctx, http.MethodPost, "createLink", nil, req, &created)
	return created, err
}

// UpdateLink изменяет основную запись ссылки
func (c *Client) UpdateLink(ctx context.Context, id int64, in models.LinkInput) (models.Link, error) {
	var link models.Link
	err := c.query(ctx, http.MethodPut, "updateLink", idParams("id", id), in, &link)
	return link, err
}

// DeleteLink удаляет ссылку
func (c *Client) DeleteLink(ctx context.Context, id int64) error {
	return c.query(ctx, http.MethodDelete, "deleteLink", idParams("id", id), nil, nil)
}

// Lists возвращает списки
func (c *Client) Lists(ctx context.Context) ([]models.UserList, error) {
	var lists []models.UserList
	err := c.query(ctx, http.MethodGet, "getLists", nil, nil, &lists)
	return lists, err
}

// List возвращает список со ссылками
func (c *Client) List(ctx context.Context, id int64) (models.ListView, error) {
	var list models.ListView
	err := c.query(ctx, http.MethodGet, "getList", idParams("id", id), nil, &list)
	return list, err
}

// CreateList создаёт список
func (c *Client) CreateList(ctx context.Context, in models.ListInput) (models.UserList, error) {
	var list models.UserList
	err := c.query(ctx, http.MethodPost, "createList", nil, in, &list)
	return list, err
}

// UpdateList изменяет список
func (c *Client) UpdateList(ctx context.Context, id int64, in models.ListInput) (models.UserList, error) {
	var list models.UserList
	err := c.query(ctx, http.MethodPut, "updateList", idParams("id", id), in, &list)
	return list, err
}

// DeleteList удаляет список
func (c *Client) DeleteList(ctx context.Context, id int64) error {
	return c.query(ctx, http.MethodDelete, "deleteList", idParams("id", id), nil, nil)
}

// Collections возвращает коллекции
func (c *Client) Collections(ctx context.Context) ([]models.Collection, error) {
	var collections []models.Collection
	err := c.query(ctx, http.MethodGet, "getCollections", nil, nil, &collections)
	return collections, err
}

// Collection возвращает коллекцию со списками
func (c *Client) Collection(ctx context.Context, id int64) (models.CollectionView, error) {
	var collection models.CollectionView
	err := c.query(ctx, http.MethodGet, "getCollection", idParams("id", id), nil, &collection)
	return collection, err
}

// CreateCollection создаёт коллекцию
func (c *Client) CreateCollection(ctx context.Context, in models.CollectionInput) (models.Collection, error) {
	var collection models.Collection
	err := c.query(ctx, http.MethodPost, "createCollection", nil, in, &collection)
	return collection, err
}

// UpdateCollection изменяет коллекцию
func (c *Client) UpdateCollection(ctx context.Context, id int64, in models.CollectionInput) (models.Collection, error) {
	var collection models.Collection
	err := c.query(ctx, http.MethodPut, "updateCollection", idParams("id", id), in, &collection)
	return collection, err
}

// DeleteCollection удаляет коллекцию
func (c *Client) DeleteCollection(ctx context.Context, id int64) error {
	return c.query(ctx, http.MethodDelete, "deleteCollection", idParams("id", id), nil, nil)
}

// ListItems возвращает элементы списка
func (c *Client) ListItems(ctx context.Context, listID int64) ([]models.ListItem, error) {
	var items []models.ListItem
	err := c.query(ctx, http.MethodGet, "getListItems", idParams("listId", listID), nil, &items)
	return items, err
}

// AddListItem добавляет ссылку в список
func (c *Client) AddListItem(ctx context.Context, in models.ListItemInput) (models.ListItem, error) {
	var item models.ListItem
	err := c.query(ctx, http.MethodPost, "addListItem", nil, in, &item)
	return item, err
}

// RemoveListItem удаляет элемент списка
func (c *Client) RemoveListItem(ctx context.Context, itemID int64) error {
	return c.query(ctx, http.MethodDelete, "removeListItem", idParams("id", itemID), nil, nil)
}
