package main

import (
	"net/http"
	"net/url"
	"os"

	"github.com/hashicorp/go-hclog"

	"spaedge/pkg/edgeproxy"
	"spaedge/pkg/rewrite"
)

// Local stand-in for the CDN: every request is rewritten the way the edge
// function would, then forwarded to the origin (e.g. an S3 website
// endpoint or a bucket served by cmd/runserver).
func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "spaedge-proxy",
		Level: hclog.LevelFromString(os.Getenv("LOG_LEVEL")),
	})

	target := "http://localhost:8080"
	if v := os.Getenv("TARGET"); v != "" {
		target = v
	}
	listen := ":8090"
	if v := os.Getenv("LISTEN"); v != "" {
		listen = v
	}

	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" || u.Host == "" {
		logger.Error("invalid TARGET", "target", target, "error", err)
		os.Exit(1)
	}

	logger.Info("proxying", "origin", target, "listen", listen)
	if err := http.ListenAndServe(listen, newHandler(u, logger)); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newHandler(origin *url.URL, logger hclog.Logger) http.Handler {
	proxy := edgeproxy.NewReverseProxy(origin, edgeproxy.Options{Logger: logger})
	forward := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("forwarding", "method", r.Method, "uri", r.URL.Path)
		proxy.ServeHTTP(w, r)
	})
	return edgeproxy.CORS(rewrite.Middleware(forward))
}
