package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tempizhere/linkvault/internal/app"
	"github.com/tempizhere/linkvault/internal/auth"
	"github.com/tempizhere/linkvault/internal/models"
	"github.com/tempizhere/linkvault/internal/service"
	"github.com/tempizhere/linkvault/internal/store"
)

func ptr[T any](v T) *T { return &v }

func newTestClient(t *testing.T) *Client {
	t.Helper()
	logger := zap.NewNop()
	svc := service.NewService(store.NewMemoryStore(), logger)
	mgr := auth.NewManager("client-secret", time.Hour)
	srv := httptest.NewServer(app.NewApp(svc, logger).NewRouter(app.RouterConfig{Auth: mgr}))
	t.Cleanup(srv.Close)

	token, err := mgr.Issue("user-1")
	require.NoError(t, err)
	return New(srv.URL+"/", WithHTTPClient(srv.Client()), WithToken(token))
}

func TestClient_Links(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	created, err := c.CreateLink(ctx, models.CreateLinkRequest{
		Title:  ptr("Go"),
		URL:    ptr("https://go.dev"),
		IDArea: models.SlotOf(2),
		IDCat:  models.SlotOf(7),
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	link, err := c.Link(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://go.dev", link.URL)
	require.NotNil(t, link.Status)
	assert.Equal(t, "user-1", link.Status.UserID)
	require.NotNil(t, link.Classification)
	assert.Equal(t, int64(7), link.Classification.IDCat.Value)

	updated, err := c.UpdateLink(ctx, created.ID, models.LinkInput{Title: ptr("Go site")})
	require.NoError(t, err)
	assert.Equal(t, "Go site", updated.Title)

	links, err := c.Links(ctx)
	require.NoError(t, err)
	assert.Len(t, links, 1)

	require.NoError(t, c.DeleteLink(ctx, created.ID))

	_, err = c.Link(ctx, created.ID)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestClient_CreateLinkWithoutSlots(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	plain, err := c.CreateLink(ctx, models.CreateLinkRequest{URL: ptr("https://plain.example")})
	require.NoError(t, err)
	link, err := c.Link(ctx, plain.ID)
	require.NoError(t, err)
	assert.Nil(t, link.Classification, "Unset slots are not sent")

	unset, err := c.CreateLink(ctx, models.CreateLinkRequest{URL: ptr("https://unset.example"), IDArea: models.SlotOf(-1)})
	require.NoError(t, err)
	link, err = c.Link(ctx, unset.ID)
	require.NoError(t, err)
	require.NotNil(t, link.Classification, "Explicit -1 is sent as null")
	assert.False(t, link.Classification.IDArea.Valid)
}

func TestClient_ListsAndCollections(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	collection, err := c.CreateCollection(ctx, models.CollectionInput{Name: ptr("Reading")})
	require.NoError(t, err)
	assert.Equal(t, "user-1", collection.UserID)

	list, err := c.CreateList(ctx, models.ListInput{Name: ptr("Later"), IDCollection: &collection.ID})
	require.NoError(t, err)
	assert.Equal(t, "user-1", list.IDUser)

	list, err = c.UpdateList(ctx, list.ID, models.ListInput{Public: ptr(true)})
	require.NoError(t, err)
	assert.True(t, list.Public)

	created, err := c.CreateLink(ctx, models.CreateLinkRequest{URL: ptr("https://example.com")})
	require.NoError(t, err)

	item, err := c.AddListItem(ctx, models.ListItemInput{IDList: list.ID, IDSrc: created.ID})
	require.NoError(t, err)

	view, err := c.List(ctx, list.ID)
	require.NoError(t, err)
	require.Len(t, view.Links, 1)
	assert.Equal(t, "https://example.com", view.Links[0].URL)

	items, err := c.ListItems(ctx, list.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	cv, err := c.Collection(ctx, collection.ID)
	require.NoError(t, err)
	require.Len(t, cv.Lists, 1)
	assert.Equal(t, list.ID, cv.Lists[0].ID)

	renamed, err := c.UpdateCollection(ctx, collection.ID, models.CollectionInput{Name: ptr("Archive")})
	require.NoError(t, err)
	assert.Equal(t, "Archive", renamed.Name)

	require.NoError(t, c.RemoveListItem(ctx, item.ID))
	require.NoError(t, c.DeleteList(ctx, list.ID))
	require.NoError(t, c.DeleteCollection(ctx, collection.ID))

	lists, err := c.Lists(ctx)
	require.NoError(t, err)
	assert.Empty(t, lists)
	collections, err := c.Collections(ctx)
	require.NoError(t, err)
	assert.Empty(t, collections)
}

func TestClient_ClientError(t *testing.T) {
	c := newTestClient(t)

	_, err := c.UpdateList(context.Background(), 1, models.ListInput{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "EMPTY_BODY", apiErr.Code)
	assert.Contains(t, apiErr.Error(), "EMPTY_BODY")
}

func TestClient_NotJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Links(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestState(t *testing.T) {
	s := NewState(1)

	var got []int
	unsubscribe := s.Subscribe(func(v int) { got = append(got, v) })
	s.Set(2)
	s.Update(func(v int) int { return v * 10 })
	unsubscribe()
	s.Set(3)

	assert.Equal(t, []int{1, 2, 20}, got)
	assert.Equal(t, 3, s.Get())
}

func TestState_Concurrent(t *testing.T) {
	s := NewState(0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update(func(v int) int { return v + 1 })
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, s.Get())
}
