package rewrite

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// IndexDocument is what extensionless URIs are served as.
const IndexDocument = "/index.html"

var (
	ErrNoRecords = errors.New("event has no records")
	ErrNoRequest = errors.New("record has no request")
	ErrEmptyURI  = errors.New("request uri is empty")
)

// Domain types for the CloudFront viewer/origin request event.

type Header struct {
	Key   string `json:"key,omitempty"`
	Value string `json:"value"`
}

type Request struct {
	ClientIP    string              `json:"clientIp,omitempty"`
	Method      string              `json:"method,omitempty"`
	URI         string              `json:"uri"`
	Querystring string              `json:"querystring"`
	Headers     map[string][]Header `json:"headers,omitempty"`
	Origin      map[string]any      `json:"origin,omitempty"`
	Body        map[string]any      `json:"body,omitempty"`
}

type Config struct {
	DistributionDomainName string `json:"distributionDomainName,omitempty"`
	DistributionID         string `json:"distributionId,omitempty"`
	EventType              string `json:"eventType,omitempty"`
	RequestID              string `json:"requestId,omitempty"`
}

type CF struct {
	Config  Config   `json:"config"`
	Request *Request `json:"request"`
}

type Record struct {
	CF CF `json:"cf"`
}

type Event struct {
	Records []Record `json:"Records"`
}

// "." followed by at least one character that is not a line terminator,
// with line terminators as JavaScript counts them.
var extension = regexp.MustCompile(`\.[^\n\r\x{2028}\x{2029}]+`)

// IsExtensionless reports whether uri has no "." followed by at least one
// more character anywhere in it.
func IsExtensionless(uri string) bool {
	return !extension.MatchString(uri)
}

// Rewrite points extensionless requests at IndexDocument and returns req.
func Rewrite(req *Request) (*Request, error) {
	if req == nil {
		return nil, ErrNoRequest
	}
	if req.URI == "" {
		return nil, ErrEmptyURI
	}
	if IsExtensionless(req.URI) {
		req.URI = IndexDocument
	}
	return req, nil
}

// HandleEvent rewrites the request carried by the first record of ev.
// Its signature is what lambda.Start expects.
func HandleEvent(_ context.Context, ev Event) (*Request, error) {
	if len(ev.Records) == 0 {
		return nil, ErrNoRecords
	}
	req, err := Rewrite(ev.Records[0].CF.Request)
	if err != nil {
		return nil, fmt.Errorf("rewrite %s request: %w", ev.Records[0].CF.Config.EventType, err)
	}
	return req, nil
}
