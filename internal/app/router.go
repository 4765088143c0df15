package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tempizhere/linkvault/internal/apierror"
	"github.com/tempizhere/linkvault/internal/auth"
	"github.com/tempizhere/linkvault/internal/middleware"
)

// RouterConfig - параметры маршрутизатора
type RouterConfig struct {
	Auth          *auth.Manager
	TrustedSubnet string
}

// NewRouter собирает маршруты API и цепочку middleware
func (a *App) NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.LoggingMiddleware(a.logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.GzipMiddleware(a.rw, a.logger))

	r.NotFound(a.NotFound)
	r.MethodNotAllowed(a.MethodNotAllowed(r))

	r.Get("/ping", a.HandlePing)

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Auth != nil {
			r.Use(middleware.AuthMiddleware(cfg.Auth, a.rw, a.logger))
		}
		r.HandleFunc("/main", a.HandleMain)
		r.HandleFunc("/main/doQueries", a.HandleQuery)

		r.Group(func(r chi.Router) {
			r.Use(middleware.TrustedSubnetMiddleware(cfg.TrustedSubnet, a.rw, a.logger))
			r.HandleFunc("/dev/lists/items", a.HandleListItems)
		})
	})

	return r
}

// routeMethods - методы, которые проверяются при заполнении заголовка Allow
var routeMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// allowedMethods перечисляет методы, для которых у пути есть обработчик
func allowedMethods(routes chi.Routes, path string) []string {
	var allow []string
	for _, method := range routeMethods {
		if routes.Match(chi.NewRouteContext(), method, path) {
			allow = append(allow, method)
		}
	}
	return allow
}

// MethodNotAllowed отвечает 405 с заголовком Allow, собранным по маршрутам routes
func (a *App) MethodNotAllowed(routes chi.Routes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.rw.Error(w, apierror.MethodNotAllowed(r.Method, allowedMethods(routes, r.URL.Path)...))
	}
}
