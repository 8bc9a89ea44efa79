package edgeproxy

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-hclog"
)

const defaultUserAgent = "spaedge-proxy/1.0"

// Options tweaks NewReverseProxy.
type Options struct {
	UserAgent string // sent when the client sent none
	Accept    string // forced Accept header, if set
	Logger    hclog.Logger
}

// NewReverseProxy forwards to target, keeping the full incoming path joined
// under target's base path.
func NewReverseProxy(target *url.URL, opts Options) *httputil.ReverseProxy {
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}

	proxy := &httputil.ReverseProxy{}
	proxy.Director = func(r *http.Request) {
		r.URL.Scheme = target.Scheme
		r.URL.Host = target.Host
		r.URL.Path = SingleSlashJoin(target.Path, r.URL.Path)
		r.URL.RawPath = ""
		switch {
		case target.RawQuery == "":
		case r.URL.RawQuery == "":
			r.URL.RawQuery = target.RawQuery
		default:
			r.URL.RawQuery = target.RawQuery + "&" + r.URL.RawQuery
		}
		r.Host = target.Host
		if r.Header.Get("User-Agent") == "" {
			r.Header.Set("User-Agent", opts.UserAgent)
		}
		if opts.Accept != "" {
			r.Header.Set("Accept", opts.Accept)
		}
	}
	proxy.Transport = cleanhttp.DefaultPooledTransport()
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		opts.Logger.Error("upstream request failed", "target", target.String(), "path", r.URL.Path, "error", err)
		w.WriteHeader(http.StatusBadGateway)
	}
	return proxy
}

// CORS wraps a handler with permissive CORS (dev only).
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireGet rejects anything but GET and HEAD.
func RequireGet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "not a GET request", http.StatusMethodNotAllowed)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SingleSlashJoin joins base and path with exactly one slash.
func SingleSlashJoin(a, b string) string {
	aslash := strings.HasSuffix(a, "/")
	bslash := strings.HasPrefix(b, "/")
	switch {
	case aslash && bslash:
		return a + b[1:]
	case !aslash && !bslash:
		return a + "/" + b
	default:
		return a + b
	}
}
