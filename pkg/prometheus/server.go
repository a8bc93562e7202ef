package prometheus

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewServer(listen, path string) *http.Server {
	router := mux.NewRouter()
	router.Handle(path, promhttp.Handler())

	return &http.Server{
		Addr:    listen,
		Handler: router,
	}
}
