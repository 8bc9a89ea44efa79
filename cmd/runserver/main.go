package main

import (
	"net/http"
	"os"

	"github.com/hashicorp/go-hclog"

	"spaedge/pkg/edgeproxy"
	"spaedge/pkg/rewrite"
)

// Minimal SPA host for Cloud Run. If you want the API proxy too, deploy
// cmd/serve instead.
func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "spaedge-runserver",
		Level:      hclog.LevelFromString(os.Getenv("LOG_LEVEL")),
		JSONFormat: os.Getenv("LOG_JSON") != "",
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	webDir := os.Getenv("WEB_DIR")
	if webDir == "" {
		webDir = "./web"
	}

	logger.Info("listening", "port", port, "dir", webDir)
	if err := http.ListenAndServe(":"+port, newMux(webDir)); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMux(webDir string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/", rewrite.Middleware(edgeproxy.FileServer(http.Dir(webDir))))
	return mux
}
