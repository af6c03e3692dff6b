package request

import (
	"net/http"
	"net/url"
	"strings"
)

// DefaultBodyLimit is the body limit used when none is configured.
const DefaultBodyLimit int64 = 100 * 1024

// Options controls request normalization.
type Options struct {
	// BodyLimit is the maximum accepted body size in bytes.
	BodyLimit int64 `conf:"body_limit"`
}

// Normalize extracts the endpoint independent view of r. The body of JSON
// and form requests is consumed. A body that cannot be parsed yields a
// *ParseError, an oversized one a *TooLargeError.
func Normalize(r *http.Request, opts Options) (*Request, error) {
	limit := opts.BodyLimit
	if limit <= 0 {
		limit = DefaultBodyLimit
	}

	body, err := parseBody(r, limit)
	if err != nil {
		return nil, err
	}

	return &Request{
		Method:    r.Method,
		Header:    normalizeHeader(r),
		Query:     normalizeQuery(r.URL),
		Params:    map[string]string{},
		RawTarget: rawTarget(r),
		Body:      body,
	}, nil
}

func normalizeHeader(r *http.Request) map[string]string {
	header := make(map[string]string, len(r.Header)+1)

	// net/http moves the host header out of the header map
	if r.Host != "" {
		header["host"] = r.Host
	}

	for name, values := range r.Header {
		key := strings.ToLower(name)
		value := strings.Join(values, ", ")

		if existing, ok := header[key]; ok && key != "host" {
			value = existing + ", " + value
		}

		header[key] = value
	}

	return header
}

func normalizeQuery(u *url.URL) map[string]string {
	// malformed pairs are skipped, the rest is kept
	values, _ := url.ParseQuery(u.RawQuery)

	query := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			query[key] = vals[0]
		}
	}

	return query
}

func rawTarget(r *http.Request) string {
	if r.RequestURI != "" {
		return r.RequestURI
	}

	// requests that did not come off the wire (serverless adapters,
	// client-built requests) have no request line
	return r.URL.RequestURI()
}
