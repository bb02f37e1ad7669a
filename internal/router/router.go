package router

import (
	"net/http"

	"github.com/rs/zerolog"

	"zero-waste-meals/internal/auth"
	"zero-waste-meals/internal/handler"
	"zero-waste-meals/internal/middleware"
)

// New creates a new HTTP router with all routes and middleware configured.
// Public listings carry no authentication; reads of caller-scoped data add
// the ownership check on top of identity verification; mutating routes
// require a verified identity.
func New(
	foodHandler *handler.FoodHandler,
	requestHandler *handler.RequestHandler,
	verifier auth.TokenVerifier,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	authenticate := middleware.Authenticate(verifier, logger)
	ownership := middleware.RequireOwnership(logger)

	// Welcome endpoint; "/" also catches every unregistered path.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("welcome to the zero waste meals server"))
	})

	// Public listings
	mux.HandleFunc("/getFoodLargeQuantity", foodHandler.TopByQuantity)
	mux.HandleFunc("/getFoodStatus", foodHandler.Search)

	// Single-item routes share the /food/{id} prefix and dispatch on method
	foodItemHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			foodHandler.GetByID(w, r)
		case http.MethodDelete:
			foodHandler.Delete(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.Handle("/food/", authenticate(foodItemHandler))

	mux.Handle("/foodsByEmail", authenticate(ownership(http.HandlerFunc(foodHandler.ListByDonor))))
	mux.Handle("/foods", authenticate(http.HandlerFunc(foodHandler.Create)))
	mux.Handle("/foodUpdate/", authenticate(http.HandlerFunc(foodHandler.Update)))

	mux.Handle("/requests", authenticate(ownership(http.HandlerFunc(requestHandler.ListByRequester))))
	mux.Handle("/requested", authenticate(http.HandlerFunc(requestHandler.Create)))

	// Apply middleware in order: Recovery -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
