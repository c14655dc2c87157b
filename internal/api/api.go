// Package api sets up and starts the API server with routing, middleware,
// and Swagger documentation.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"recipeshare/docs"
	"recipeshare/internal/api/middleware"
	"recipeshare/internal/api/routes/ping"
	"recipeshare/internal/api/routes/recipes"
	"recipeshare/internal/env"
)

func addDocs(r *chi.Mux) {
	r.Get("/api/openapi.yaml", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/x-yaml")
		_, _ = w.Write(docs.OpenAPI())
	})

	swagger := httpSwagger.Handler(
		httpSwagger.URL("/api/openapi.yaml"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	)

	r.Mount("/api/swagger", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		// Handle preflight
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		// Allow GET to serve Swagger
		if req.Method == http.MethodGet {
			swagger.ServeHTTP(w, req)
			return
		}

		// Block anything else
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}))
}

func addRoutes(router *chi.Mux) {
	router.Route("/api", func(r chi.Router) {
		r.Get("/ping", ping.HandlePing)

		// Method dispatch (including the unsupported-method envelope)
		// lives in the handlers, so the routes bind all methods.
		r.Handle("/recipe", http.HandlerFunc(recipes.HandleCreateRecipe))
		r.Handle("/recipes", http.HandlerFunc(recipes.HandleListRecipes))
	})

	router.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

func Start(e *env.Env) error {
	router := chi.NewRouter()
	router.Use(middleware.AddRequestID)
	router.Use(middleware.LogRequest(e.Logger))
	router.Use(middleware.InjectEnv(e))
	router.Use(middleware.CollectMetrics)
	router.Use(middleware.AddCors)

	addRoutes(router)
	addDocs(router)

	addr := fmt.Sprintf(":%d", e.Config.Server.Port)
	e.Logger.Info(fmt.Sprintf("Listening at 0.0.0.0%s", addr))
	e.Logger.Info(fmt.Sprintf("Swagger UI available at http://0.0.0.0%s/api/swagger/index.html", addr))
	return http.ListenAndServe(addr, router)
}
