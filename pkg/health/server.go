package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

const checkTimeout = 2 * time.Second

type Pinger interface {
	PingContext(ctx context.Context) error
}

func NewHealthCheckServer(listen, path string, handler http.Handler) *http.Server {
	router := mux.NewRouter()
	router.Handle(path, handler).Methods(http.MethodGet)

	return &http.Server{
		Addr:    listen,
		Handler: router,
	}
}

// DefaultHandler reports the service as healthy while the database is reachable
func DefaultHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			log.Error().Err(err).Msg("health check: ping database")
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}

		w.WriteHeader(http.StatusOK)
	})
}
