// internal/handlers/api_server.go
package handlers

import (
	"net/http"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/jason-s-yu/uno/internal/middleware"
	"github.com/jason-s-yu/uno/internal/store"
	"github.com/sirupsen/logrus"
)

// NewRouter wires the deal endpoints and static file serving of staticDir.
// Every request is logged, recovered from panics and given permissive CORS
// headers so a page served from another origin can call the API.
func NewRouter(logger *logrus.Logger, ds store.DealStore, staticDir string) http.Handler {
	srv := NewDealServer(logger, ds)

	mux := http.NewServeMux()
	mux.HandleFunc("/reshuffle", srv.ReshuffleHandler)
	mux.HandleFunc("/deal", srv.GetDealHandler)
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))

	var h http.Handler = mux
	h = gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins([]string{"*"}),
		gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
	)(h)
	h = gorillahandlers.RecoveryHandler(
		gorillahandlers.RecoveryLogger(logger),
		gorillahandlers.PrintRecoveryStack(true),
	)(h)
	return middleware.LogMiddleware(logger)(h)
}
