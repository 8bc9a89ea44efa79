package rewrite

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewrite(t *testing.T) {
	for _, tt := range []struct {
		uri  string
		want string
	}{
		{"/about/team", "/index.html"},
		{"/app.js", "/app.js"},
		{"/", "/index.html"},
		{"/assets/logo.png", "/assets/logo.png"},
		{"/index.html", "/index.html"},
		{"/v1.2/docs", "/v1.2/docs"},
		{"/trailing.", "/index.html"},
		{"/.well-known", "/.well-known"},
		{"/deep/nested/route/", "/index.html"},
		{"/a.\n", "/index.html"},
		{"/a.\r", "/index.html"},
		{"/a.\u2028", "/index.html"},
		{"/a.\u2029", "/index.html"},
		{"/a.\rb", "/index.html"},
		{"/a.b\r", "/a.b\r"},
	} {
		t.Run(tt.uri, func(t *testing.T) {
			req := &Request{URI: tt.uri, Method: "GET"}
			got, err := Rewrite(req)
			require.NoError(t, err)
			assert.Same(t, req, got)
			assert.Equal(t, tt.want, got.URI)
			assert.Equal(t, "GET", got.Method)
		})
	}
}

func TestRewriteProperties(t *testing.T) {
	paths := []string{
		"/", "/a", "/a/b/c", "/a.b", "/a.b/c", "/x.", "/..", "/.a",
		"/files/report.pdf", "/users/42", "/search", "/index.html",
		"/café/menu", "/emoji/🙂.svg",
	}
	for _, p := range paths {
		first, err := Rewrite(&Request{URI: p})
		require.NoError(t, err)
		if IsExtensionless(p) {
			assert.Equal(t, IndexDocument, first.URI, p)
		} else {
			assert.Equal(t, p, first.URI, p)
		}

		once := first.URI
		second, err := Rewrite(first)
		require.NoError(t, err)
		assert.Equal(t, once, second.URI, "not idempotent for %q", p)
	}
}

func TestRewriteRejectsBadInput(t *testing.T) {
	_, err := Rewrite(nil)
	assert.ErrorIs(t, err, ErrNoRequest)

	_, err = Rewrite(&Request{})
	assert.ErrorIs(t, err, ErrEmptyURI)
}

const viewerRequest = `{
  "Records": [
    {
      "cf": {
        "config": {
          "distributionDomainName": "d111111abcdef8.cloudfront.net",
          "distributionId": "EDFDVBD6EXAMPLE",
          "eventType": "origin-request",
          "requestId": "4TyzHTaYWb1GX1qTfsHhEqV6HUDd_BzoBZnwfnvQc_1oF26ClkoUSEQ=="
        },
        "request": {
          "clientIp": "203.0.113.178",
          "headers": {
            "host": [{"key": "Host", "value": "d111111abcdef8.cloudfront.net"}],
            "user-agent": [{"key": "User-Agent", "value": "curl/7.66.0"}]
          },
          "method": "GET",
          "querystring": "tab=2",
          "uri": "/about/team"
        }
      }
    }
  ]
}`

func TestHandleEvent(t *testing.T) {
	var ev Event
	require.NoError(t, json.Unmarshal([]byte(viewerRequest), &ev))

	req, err := HandleEvent(context.Background(), ev)
	require.NoError(t, err)
	assert.Equal(t, "/index.html", req.URI)
	assert.Equal(t, "tab=2", req.Querystring)
	assert.Equal(t, "203.0.113.178", req.ClientIP)
	require.Len(t, req.Headers["host"], 1)
	assert.Equal(t, "d111111abcdef8.cloudfront.net", req.Headers["host"][0].Value)

	b, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"uri":"/index.html"`)
}

func TestHandleEventErrors(t *testing.T) {
	_, err := HandleEvent(context.Background(), Event{})
	assert.ErrorIs(t, err, ErrNoRecords)

	_, err = HandleEvent(context.Background(), Event{Records: []Record{{}}})
	assert.ErrorIs(t, err, ErrNoRequest)

	ev := Event{Records: []Record{{CF: CF{
		Config:  Config{EventType: "viewer-request"},
		Request: &Request{},
	}}}}
	_, err = HandleEvent(context.Background(), ev)
	assert.ErrorIs(t, err, ErrEmptyURI)
	assert.Contains(t, err.Error(), "viewer-request")
}
