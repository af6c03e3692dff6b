package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

const (
	MediaTypeJSON = "application/json"
	MediaTypeForm = "application/x-www-form-urlencoded"
)

type bodyKind int

const (
	bodyKindNone bodyKind = iota
	bodyKindJSON
	bodyKindForm
)

func detectBodyKind(contentType string) bodyKind {
	if contentType == "" {
		return bodyKindNone
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType, _, _ = strings.Cut(contentType, ";")
		mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	}

	switch mediaType {
	case MediaTypeJSON:
		return bodyKindJSON
	case MediaTypeForm:
		return bodyKindForm
	default:
		return bodyKindNone
	}
}

func parseBody(r *http.Request, limit int64) (any, error) {
	kind := detectBodyKind(r.Header.Get("Content-Type"))
	if kind == bodyKindNone {
		return map[string]any{}, nil
	}

	raw, err := readBody(r, limit)
	if err != nil {
		return nil, err
	}

	switch kind {
	case bodyKindJSON:
		return parseJSON(raw)
	default:
		return parseForm(raw), nil
	}
}

func readBody(r *http.Request, limit int64) ([]byte, error) {
	if r.ContentLength > limit {
		return nil, newTooLargeError(limit, r.ContentLength)
	}

	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, newParseError(raw, fmt.Sprintf("failed to read body: %s", err))
	}

	if int64(len(raw)) > limit {
		return nil, newTooLargeError(limit, int64(len(raw)))
	}

	return raw, nil
}

// parseJSON accepts only objects and arrays at the top level. Numbers are
// kept as json.Number so they are echoed back with their original text.
func parseJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return map[string]any{}, nil
	}

	if first := trimmed[0]; first != '{' && first != '[' {
		pos := len(raw) - len(trimmed)
		return nil, newParseError(raw, fmt.Sprintf("unexpected token %q in JSON at position %d", first, pos))
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, newParseError(raw, err.Error())
	}

	var trailing any
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return nil, newParseError(raw, "unexpected data after top-level JSON value")
	}

	return body, nil
}

// parseForm decodes a urlencoded body. Keys supplied once map to a string,
// repeated keys to an array of strings. Undecodable escapes are kept as is.
func parseForm(raw []byte) map[string]any {
	form := make(map[string]any)

	for _, pair := range strings.Split(string(raw), "&") {
		if pair == "" {
			continue
		}

		key, value, _ := strings.Cut(pair, "=")
		key, value = unescapeForm(key), unescapeForm(value)

		switch existing := form[key].(type) {
		case nil:
			form[key] = value
		case string:
			form[key] = []any{existing, value}
		case []any:
			form[key] = append(existing, value)
		}
	}

	return form
}

func unescapeForm(s string) string {
	if v, err := url.QueryUnescape(s); err == nil {
		return v
	}

	return strings.ReplaceAll(s, "+", " ")
}
