package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []func(http.Handler) http.Handler // aplicados na ordem da lista
}

type Router struct {
	router *httprouter.Router
	// rotas que aceitam qualquer método, inclusive HEAD, TRACE e métodos fora do padrão
	anyMethod map[string]http.Handler
}

type ConfigRouter func(router *Router)

func WithRoutes(routes ...Route) ConfigRouter {
	return func(router *Router) {
		router.AddRoutes(routes...)
	}
}

// WithAnyMethod entrega toda requisição para path ao handler, seja qual for o método
func WithAnyMethod(path string, handler http.Handler) ConfigRouter {
	return func(router *Router) {
		router.anyMethod[path] = handler
		logrus.WithField("path", path).Debug("rota registrada para qualquer método")
	}
}

// WithNotFound cobre rota inexistente e método não registrado
func WithNotFound(handler http.Handler) ConfigRouter {
	return func(router *Router) {
		router.router.NotFound = handler
	}
}

func New(configs ...ConfigRouter) Router {
	rt := httprouter.New()
	// OPTIONS fica com o middleware de CORS; método errado cai no NotFound
	rt.HandleOPTIONS = false
	rt.HandleMethodNotAllowed = false

	router := &Router{router: rt, anyMethod: map[string]http.Handler{}}
	for _, config := range configs {
		config(router)
	}

	return *router
}

func (r Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if handler, ok := r.anyMethod[req.URL.Path]; ok {
		handler.ServeHTTP(w, req)
		return
	}
	r.router.ServeHTTP(w, req)
}

func (r Router) AddRoutes(routes ...Route) {
	for _, route := range routes {
		handler := route.Handler
		for i := len(route.Middlewares) - 1; i >= 0; i-- {
			handler = route.Middlewares[i](handler)
		}

		r.router.Handler(route.Method, route.Path, handler)
		logrus.WithFields(logrus.Fields{"method": route.Method, "path": route.Path}).Debug("rota registrada")
	}
}
