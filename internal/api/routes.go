package api

import (
	"net/http"

	"github.com/JaimeStill/triage/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	runtime *Runtime,
) {
	routes.Register(
		mux,
		domain.Triage.Handler(runtime.MaxUploadSize).Routes(),
	)
}
