package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
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

type testServer struct {
	url   string
	token string
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	logger := zap.NewNop()
	mgr := auth.NewManager("cli-secret", time.Hour)
	svc := service.NewService(store.NewMemoryStore(), logger)
	srv := httptest.NewServer(app.NewApp(svc, logger).NewRouter(app.RouterConfig{Auth: mgr}))
	t.Cleanup(srv.Close)

	token, err := mgr.Issue("cli-user")
	require.NoError(t, err)
	return testServer{url: srv.URL, token: token}
}

// execute запускает linkctl с адресом тестового сервера
func (s testServer) execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--server", s.url, "--token", s.token}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestLinksCommands(t *testing.T) {
	s := newTestServer(t)

	out, err := s.execute(t, "links", "add", "--url", "https://go.dev", "--title", "Go", "--area", "3", "--cat", "9")
	require.NoError(t, err)
	var created models.Created
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	require.NotZero(t, created.ID)

	out, err = s.execute(t, "links", "get", "1")
	require.NoError(t, err)
	var link models.LinkView
	require.NoError(t, json.Unmarshal([]byte(out), &link))
	assert.Equal(t, "Go", link.Title)
	require.NotNil(t, link.Status)
	assert.Equal(t, "cli-user", link.Status.UserID)
	require.NotNil(t, link.Classification)
	assert.Equal(t, int64(9), link.Classification.IDCat.Value)

	out, err = s.execute(t, "links", "list")
	require.NoError(t, err)
	var links []models.LinkView
	require.NoError(t, json.Unmarshal([]byte(out), &links))
	assert.Len(t, links, 1)

	out, err = s.execute(t, "links", "rm", "1")
	require.NoError(t, err)
	assert.Equal(t, "link 1 deleted\n", out)

	_, err = s.execute(t, "links", "get", "1")
	assert.ErrorContains(t, err, "NOT_FOUND")
}

func TestLinksAdd_RequiresURL(t *testing.T) {
	s := newTestServer(t)
	_, err := s.execute(t, "links", "add", "--title", "no url")
	assert.ErrorContains(t, err, "url")
}

func TestListsCommands(t *testing.T) {
	s := newTestServer(t)

	_, err := s.execute(t, "collections", "add", "--name", "Reading")
	require.NoError(t, err)
	_, err = s.execute(t, "lists", "add", "--name", "Later", "--collection", "1")
	require.NoError(t, err)
	_, err = s.execute(t, "links", "add", "--url", "https://example.com")
	require.NoError(t, err)

	out, err := s.execute(t, "lists", "add-item", "1", "1")
	require.NoError(t, err)
	var item models.ListItem
	require.NoError(t, json.Unmarshal([]byte(out), &item))
	assert.Equal(t, int64(1), item.IDList)

	out, err = s.execute(t, "lists", "get", "1")
	require.NoError(t, err)
	var view models.ListView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Len(t, view.Links, 1)
	assert.Equal(t, "https://example.com", view.Links[0].URL)

	out, err = s.execute(t, "lists", "set", "1", "--public")
	require.NoError(t, err)
	var list models.UserList
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.True(t, list.Public)

	out, err = s.execute(t, "col", "get", "1")
	require.NoError(t, err)
	var cv models.CollectionView
	require.NoError(t, json.Unmarshal([]byte(out), &cv))
	assert.Len(t, cv.Lists, 1)

	out, err = s.execute(t, "lists", "rm-item", "1")
	require.NoError(t, err)
	assert.Equal(t, "item 1 removed\n", out)

	out, err = s.execute(t, "lists", "items", "1")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)

	_, err = s.execute(t, "lists", "rm", "x")
	assert.ErrorContains(t, err, `invalid id "x"`)
}

func TestServerFromEnv(t *testing.T) {
	s := newTestServer(t)
	t.Setenv("LINKVAULT_SERVER", s.url)
	t.Setenv("LINKVAULT_TOKEN", s.token)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"collections", "list"})
	require.NoError(t, cmd.Execute())
	assert.JSONEq(t, "[]", out.String())
}
