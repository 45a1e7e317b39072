package api

import (
	"net/http"
	"strconv"
	"time"

	_ "fxconvert/docs"
	"fxconvert/internal/conversion/handler"
	"fxconvert/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(h *handler.Handler, requestTimeout time.Duration) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	router.Get("/swagger/*", swagger.WrapHandler)
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Use(countRequests)
		if requestTimeout > 0 {
			r.Use(middleware.Timeout(requestTimeout))
		}
		r.Get("/rates", h.GetRates)
		r.Post("/convert", h.Convert)
		r.Get("/conversions", h.ListConversions)
		r.Get("/reasons", h.ListReasons)
		r.Get("/reasons/{id}", h.GetReason)
	})
	return router
}

// countRequests labels requests by route pattern so path values never become label values.
func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
	})
}
