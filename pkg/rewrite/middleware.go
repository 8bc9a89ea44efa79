package rewrite

import "net/http"

// Middleware applies the same rule as Rewrite to the escaped request path,
// which is what the edge function sees as uri, before handing the request
// to next. Requests are never rejected.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p := r.URL.EscapedPath(); p == "" || IsExtensionless(p) {
			r2 := r.Clone(r.Context())
			r2.URL.Path = IndexDocument
			r2.URL.RawPath = ""
			next.ServeHTTP(w, r2)
			return
		}
		next.ServeHTTP(w, r)
	})
}
