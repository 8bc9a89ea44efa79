package main

import (
	"flag"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"spaedge/pkg/edgeproxy"
	"spaedge/pkg/rewrite"
)

// serve hosts a built SPA from a directory, sending extensionless paths to
// index.html, and proxies /api/* to a backend to avoid CORS.
func main() {
	var (
		listen  = flag.String("listen", ":8080", "address to listen on")
		webDir  = flag.String("web", "./web", "directory to serve static files from")
		target  = flag.String("target", "", "upstream API base; empty disables the API proxy")
		apiBase = flag.String("api-base", "/api/", "API prefix to proxy")
	)
	flag.Parse()

	if env := os.Getenv("LISTEN"); env != "" {
		*listen = env
	}
	if env := os.Getenv("WEB_DIR"); env != "" {
		*webDir = env
	}
	if env := os.Getenv("TARGET"); env != "" {
		*target = env
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "spaedge-serve",
		Level: hclog.LevelFromString(os.Getenv("LOG_LEVEL")),
	})

	absWeb, err := filepath.Abs(*webDir)
	if err != nil {
		logger.Error("resolve web dir", "dir", *webDir, "error", err)
		os.Exit(1)
	}

	var api *url.URL
	if *target != "" {
		api, err = url.Parse(*target)
		if err != nil {
			logger.Error("invalid target", "target", *target, "error", err)
			os.Exit(1)
		}
		logger.Info("proxying API", "target", *target, "prefix", *apiBase)
	}

	logger.Info("serving static files", "dir", absWeb, "listen", *listen)
	if err := http.ListenAndServe(*listen, newMux(absWeb, api, *apiBase, logger)); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMux(webDir string, api *url.URL, apiBase string, logger hclog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	if api != nil {
		proxy := edgeproxy.NewReverseProxy(api, edgeproxy.Options{Accept: "application/json", Logger: logger})
		mux.Handle(apiBase, edgeproxy.CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, apiBase) {
				http.NotFound(w, r)
				return
			}
			proxy.ServeHTTP(w, r)
		})))
	}
	mux.Handle("/", edgeproxy.RequireGet(rewrite.Middleware(edgeproxy.FileServer(http.Dir(webDir)))))
	return mux
}
