// Package app содержит HTTP-обработчики: диспетчер операций над ссылками,
// списками и коллекциями, маршруты элементов списков и проверку доступности хранилища.
package app

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/tempizhere/linkvault/internal/apierror"
	"github.com/tempizhere/linkvault/internal/models"
	"github.com/tempizhere/linkvault/internal/response"
	"github.com/tempizhere/linkvault/internal/service"
)

// App содержит хендлеры и зависимости
type App struct {
	svc        *service.Service
	logger     *zap.Logger
	rw         *response.Writer
	bodyPolicy BodyPolicy
	now        func() time.Time
}

// Option настраивает App
type Option func(*App)

// WithBodyPolicy задаёт обработку неверных JSON-тел
func WithBodyPolicy(p BodyPolicy) Option {
	return func(a *App) { a.bodyPolicy = p }
}

// WithClock задаёт источник времени для меток в ответах
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// NewApp создаёт новое приложение
func NewApp(svc *service.Service, logger *zap.Logger, opts ...Option) *App {
	a := &App{svc: svc, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	a.rw = response.NewWriter(logger, a.now)
	return a
}

// Responses возвращает writer конвертов, общий для приложения и middleware
func (a *App) Responses() *response.Writer {
	return a.rw
}

// HandleMain обрабатывает /api/v1/main: GET - ссылки со связанными записями, POST - создание ссылки
func (a *App) HandleMain(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		links, err := a.svc.ListLinksWithAssociations(r.Context())
		if err != nil {
			a.rw.Error(w, err)
			return
		}
		a.rw.Success(w, http.StatusOK, links, "")
	case http.MethodPost:
		req, err := decodeBody[models.CreateLinkRequest](w, r, a.bodyPolicy)
		if err != nil {
			a.rw.Error(w, err)
			return
		}
		created, err := a.createLink(r, req)
		if err != nil {
			a.rw.Error(w, err)
			return
		}
		a.rw.Success(w, http.StatusCreated, created, "Link created")
	default:
		a.rw.Error(w, apierror.MethodNotAllowed(r.Method, http.MethodGet, http.MethodPost))
	}
}

// HandlePing проверяет доступность хранилища
func (a *App) HandlePing(w http.ResponseWriter, r *http.Request) {
	if err := a.svc.Ping(r.Context()); err != nil {
		a.logger.Error("Store ping failed", zap.Error(err))
		a.rw.Error(w, err)
		return
	}
	a.rw.Success(w, http.StatusOK, nil, "pong")
}

// NotFound отвечает на неизвестные маршруты
func (a *App) NotFound(w http.ResponseWriter, r *http.Request) {
	a.rw.Error(w, apierror.NotFound("Route not found: "+r.URL.Path))
}
