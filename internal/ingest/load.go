// Package ingest turns an OpenAPI 3 or Swagger 2 document into a
// Definition.
//
// Load reads a document from a file or an http(s) URL, converts Swagger 2
// input to OpenAPI 3 and validates it permissively. ToDefinition then
// groups operations into services and maps schemas onto descriptors.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/mark3labs/swagen/internal/logging"
)

// Document is a loaded OpenAPI 3 document.
type Document struct {
	*openapi3.T
	// Version is 2 when the source was Swagger 2.0 and has been converted.
	Version  int
	Location string

	order keyOrder
}

// Settings configures loader behavior.
type Settings struct {
	// HTTPTimeout bounds each HTTP request.
	HTTPTimeout time.Duration
	// MaxRetries for transient HTTP failures (>=500, 429, or network errors).
	MaxRetries int
	// BackoffBase is the base delay for exponential backoff.
	BackoffBase time.Duration
	// AllowFileRefs permits file refs from a document fetched over HTTP.
	// Documents read from disk may always reference sibling files.
	AllowFileRefs bool
}

// DefaultSettings returns recommended defaults.
func DefaultSettings() Settings {
	return Settings{
		HTTPTimeout: 10 * time.Second,
		MaxRetries:  3,
		BackoffBase: 200 * time.Millisecond,
	}
}

// Option mutates Settings.
type Option func(*Settings)

func WithHTTPTimeout(d time.Duration) Option { return func(s *Settings) { s.HTTPTimeout = d } }
func WithMaxRetries(n int) Option            { return func(s *Settings) { s.MaxRetries = n } }
func WithBackoffBase(d time.Duration) Option { return func(s *Settings) { s.BackoffBase = d } }
func WithAllowFileRefs(allow bool) Option    { return func(s *Settings) { s.AllowFileRefs = allow } }

// Load reads, converts and validates the document at input, a filesystem
// path or an http/https URL. file:// URLs are rejected.
func Load(ctx context.Context, input string, opts ...Option) (*Document, error) {
	if strings.TrimSpace(input) == "" {
		return nil, &LoadError{Code: InputError, Message: "ingest: input is empty"}
	}
	settings := DefaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}

	u, uerr := url.Parse(input)
	if uerr == nil && u.Scheme != "" && u.Host != "" {
		scheme := strings.ToLower(u.Scheme)
		if scheme == "file" {
			return nil, &LoadError{Code: InputError, Message: "ingest: file:// URLs are not supported, pass a path", Location: input}
		}
		if scheme != "http" && scheme != "https" {
			return nil, &LoadError{Code: InputError, Message: fmt.Sprintf("ingest: unsupported URL scheme %q (only http/https allowed)", scheme), Location: input}
		}
		raw, err := fetchWithRetry(ctx, input, settings)
		if err != nil {
			return nil, &LoadError{Code: NetworkError, Message: fmt.Sprintf("fetch %s: %v", input, err), Location: input, Cause: err}
		}
		return load(ctx, raw, u, input, newLoader(settings, false))
	}

	abs, err := filepath.Abs(input)
	if err != nil {
		return nil, &LoadError{Code: InputError, Message: fmt.Sprintf("resolve path: %v", err), Location: input, Cause: err}
	}
	raw, err := os.ReadFile(abs)
	if err != nil {
		return nil, &LoadError{Code: InputError, Message: fmt.Sprintf("read file %s: %v", abs, err), Location: abs, Cause: err}
	}
	return load(ctx, raw, &url.URL{Path: filepath.ToSlash(abs)}, abs, newLoader(settings, true))
}

// LoadData is Load for a document already in memory. Relative refs are
// resolved against location when it is set.
func LoadData(ctx context.Context, raw []byte, location string, opts ...Option) (*Document, error) {
	settings := DefaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}
	var base *url.URL
	if location != "" {
		base = &url.URL{Path: filepath.ToSlash(location)}
	}
	return load(ctx, raw, base, location, newLoader(settings, location != ""))
}

func load(ctx context.Context, raw []byte, base *url.URL, location string, loader *openapi3.Loader) (*Document, error) {
	version, err := detectVersion(raw)
	if err != nil {
		return nil, &LoadError{Code: ParseError, Message: err.Error(), Location: location, Cause: err}
	}

	var doc *openapi3.T
	switch version {
	case 3:
		if base != nil {
			doc, err = loader.LoadFromDataWithPath(raw, base)
		} else {
			doc, err = loader.LoadFromData(raw)
		}
		if err != nil {
			return nil, mapValidateOrParseErr(err, location)
		}
	case 2:
		doc, err = convertV2ToV3(raw)
		if err != nil {
			return nil, &LoadError{Code: ConversionError, Message: fmt.Sprintf("convert v2 to v3: %v", err), Location: location, Cause: err}
		}
		if err := loader.ResolveRefsIn(doc, base); err != nil {
			logging.Logger.Warnw("unresolved refs after conversion", "location", location, "error", err)
		}
	}

	if err := doc.Validate(ctx); err != nil {
		if !canProceedDespiteValidation(err) {
			return nil, mapValidateOrParseErr(err, location)
		}
		logging.Logger.Warnw("proceeding despite validation errors", "location", location, "error", err)
	}
	logging.Logger.Debugw("loaded document", "location", location, "version", version, "paths", len(doc.Paths))
	return &Document{T: doc, Version: version, Location: location, order: readKeyOrder(raw)}, nil
}

func newLoader(settings Settings, rootIsFile bool) *openapi3.Loader {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true
	client := &http.Client{Timeout: settings.HTTPTimeout}
	allowFile := settings.AllowFileRefs || rootIsFile
	loader.ReadFromURIFunc = func(_ *openapi3.Loader, uri *url.URL) ([]byte, error) {
		switch strings.ToLower(uri.Scheme) {
		case "", "file":
			if !allowFile {
				return nil, errors.Newf("blocked file ref: %s", uri.String())
			}
			path := uri.Path
			if path == "" {
				path = uri.Opaque
			}
			return os.ReadFile(filepath.FromSlash(path))
		case "http", "https":
			resp, err := client.Get(uri.String())
			if err != nil {
				return nil, err
			}
			defer resp.Body.Close()
			if resp.StatusCode >= 400 {
				return nil, errors.Newf("http %d: %s", resp.StatusCode, uri.String())
			}
			return io.ReadAll(resp.Body)
		default:
			return nil, errors.Newf("unsupported ref scheme: %s", uri.Scheme)
		}
	}
	return loader
}

// detectVersion returns 3 for OpenAPI v3, 2 for Swagger v2, else an error.
func detectVersion(data []byte) (int, error) {
	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return 0, errors.Wrap(err, "parse document")
	}
	if s, _ := root["openapi"].(string); strings.HasPrefix(strings.TrimSpace(s), "3.") {
		return 3, nil
	}
	if s, _ := root["swagger"].(string); strings.HasPrefix(strings.TrimSpace(s), "2.") {
		return 2, nil
	}
	return 0, errors.New("ingest: missing or unknown version (expected 'openapi: 3.x' or 'swagger: 2.0')")
}

func convertV2ToV3(data []byte) (*openapi3.T, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	js, err := json.Marshal(jsonCompatible(tree))
	if err != nil {
		return nil, err
	}
	var v2 openapi2.T
	if err := json.Unmarshal(js, &v2); err != nil {
		return nil, err
	}
	return openapi2conv.ToV3(&v2)
}

// jsonCompatible rewrites the non-string mapping keys YAML allows, such
// as unquoted status codes, so the tree can be encoded as JSON.
func jsonCompatible(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = jsonCompatible(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = jsonCompatible(val)
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = jsonCompatible(val)
		}
		return t
	}
	return v
}

func fetchWithRetry(ctx context.Context, rawURL string, settings Settings) ([]byte, error) {
	client := &http.Client{Timeout: settings.HTTPTimeout}
	backoff := settings.BackoffBase
	if backoff <= 0 {
		backoff = 200 * time.Millisecond
	}
	attempts := settings.MaxRetries
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
		} else {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			switch {
			case resp.StatusCode < 300:
				return body, readErr
			case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
				lastErr = errors.Newf("transient http error %d", resp.StatusCode)
			default:
				if len(body) > 1024 {
					body = body[:1024]
				}
				return nil, errors.Newf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
			}
		}
		logging.Logger.Debugw("fetch failed", "url", rawURL, "attempt", i+1, "error", lastErr)
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	if lastErr == nil {
		lastErr = errors.New("fetch failed")
	}
	return nil, lastErr
}

func mapValidateOrParseErr(err error, location string) error {
	code := ValidationError
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "parse") || strings.Contains(msg, "invalid character") || strings.Contains(msg, "unmarshal") {
		code = ParseError
	}
	return &LoadError{Code: code, Message: err.Error(), Location: location, JSONPointer: extractJSONPointer(err), Cause: err}
}

var jsonPtrRe = regexp.MustCompile(`#/[^\s'"]+`)

func extractJSONPointer(err error) string {
	if err == nil {
		return ""
	}
	var me openapi3.MultiError
	if errors.As(err, &me) && len(me) > 0 {
		return extractJSONPointer(me[0])
	}
	var se *openapi3.SchemaError
	if errors.As(err, &se) {
		if parts := se.JSONPointer(); len(parts) > 0 {
			return "#/" + strings.Join(parts, "/")
		}
	}
	if m := jsonPtrRe.FindString(err.Error()); m != "" {
		return m
	}
	return ""
}

// canProceedDespiteValidation reports whether a best-effort conversion can
// continue, e.g. with unresolved $ref entries.
func canProceedDespiteValidation(err error) bool {
	if err == nil {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unresolved ref")
}
