package network

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/chrisuehlinger/vibepopper/html"
)

// ErrUnsupportedScheme is returned for sources that are neither files,
// data URLs nor http(s) URLs.
var ErrUnsupportedScheme = errors.New("unsupported URL scheme")

// Resource is a loaded source.
type Resource struct {
	URL         string
	Content     []byte
	ContentType string
	StatusCode  int
}

// IsSuccess returns true if the resource was loaded successfully.
func (r *Resource) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 400
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the loader logger.
func WithLogger(logger *zap.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Loader loads pages and their external scripts.
type Loader struct {
	client *Client
	logger *zap.Logger
}

// NewLoader creates a loader. A nil client disables http(s) sources.
func NewLoader(client *Client, opts ...LoaderOption) *Loader {
	l := &Loader{client: client, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads a single source.
func (l *Loader) Load(ctx context.Context, src string) (*Resource, error) {
	switch {
	case IsDataURL(src):
		d, err := ParseDataURL(src)
		if err != nil {
			return nil, err
		}
		return &Resource{URL: src, Content: d.Data, ContentType: d.MediaType, StatusCode: 200}, nil
	case !hasScheme(src):
		return l.loadFile(src, src)
	}

	u, err := url.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", src, err)
	}
	switch u.Scheme {
	case "file":
		return l.loadFile(src, u.Path)
	case "http", "https":
		if l.client == nil {
			return nil, fmt.Errorf("%w: %s (no HTTP client)", ErrUnsupportedScheme, u.Scheme)
		}
		resp, err := l.client.Get(ctx, src)
		if err != nil {
			return nil, err
		}
		res := &Resource{URL: src, Content: resp.Body, ContentType: resp.ContentType, StatusCode: resp.StatusCode}
		if !res.IsSuccess() {
			return res, fmt.Errorf("fetching %s: status %d", src, resp.StatusCode)
		}
		return res, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}
}

func (l *Loader) loadFile(src, path string) (*Resource, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ct := "application/octet-stream"
	switch {
	case strings.HasSuffix(path, ".html"), strings.HasSuffix(path, ".htm"):
		ct = "text/html"
	case strings.HasSuffix(path, ".js"):
		ct = "text/javascript"
	}
	return &Resource{URL: src, Content: content, ContentType: ct, StatusCode: 200}, nil
}

// LoadPage loads and parses an HTML page, then fetches the code of every
// external script. Scripts that fail to load are logged and left empty so
// the rest of the page still runs.
func (l *Loader) LoadPage(ctx context.Context, src string) (*html.Page, error) {
	res, err := l.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("loading page: %w", err)
	}
	page, err := html.ParseReader(bytes.NewReader(res.Content))
	if err != nil {
		return nil, fmt.Errorf("parsing page %s: %w", src, err)
	}

	for i := range page.Scripts {
		s := &page.Scripts[i]
		if s.Src == "" {
			continue
		}
		ref, err := Resolve(src, s.Src)
		if err == nil {
			var script *Resource
			if script, err = l.Load(ctx, ref); err == nil {
				s.Code = string(script.Content)
				s.Name = ref
				continue
			}
		}
		l.logger.Warn("script failed to load", zap.String("src", s.Src), zap.Error(err))
	}
	return page, nil
}
