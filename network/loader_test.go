package network

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageHTML = `<html><head><meta name="viewport" content="width=320, height=240">
<script src="app.js"></script></head>
<body><div id="ref"></div><script>var inline = 1;</script></body></html>`

func TestResolve(t *testing.T) {
	tests := []struct {
		base, ref, want string
	}{
		{"", "app.js", "app.js"},
		{"http://example.com/pages/a.html", "app.js", "http://example.com/pages/app.js"},
		{"http://example.com/pages/a.html", "/js/app.js", "http://example.com/js/app.js"},
		{"http://example.com/a.html", "https://cdn.example.com/x.js", "https://cdn.example.com/x.js"},
		{filepath.Join("pages", "a.html"), "app.js", filepath.Join("pages", "app.js")},
		{"pages/a.html", "data:,x", "data:,x"},
	}
	for _, tt := range tests {
		got, err := Resolve(tt.base, tt.ref)
		if err != nil {
			t.Errorf("Resolve(%q, %q) error: %v", tt.base, tt.ref, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%q, %q) = %q, want %q", tt.base, tt.ref, got, tt.want)
		}
	}
}

func TestParseDataURL(t *testing.T) {
	d, err := ParseDataURL("data:text/javascript;base64,dmFyIGEgPSAxOw==")
	require.NoError(t, err)
	assert.Equal(t, "text/javascript", d.MediaType)
	assert.Equal(t, "var a = 1;", string(d.Data))

	d, err = ParseDataURL("data:,hello%20world")
	require.NoError(t, err)
	assert.Equal(t, "text/plain", d.MediaType)
	assert.Equal(t, "hello world", string(d.Data))

	_, err = ParseDataURL("data:nocomma")
	assert.Error(t, err)

	_, err = ParseDataURL("http://example.com")
	assert.True(t, errors.Is(err, ErrNotDataURL))
}

func TestLoadPage_File(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.html"), []byte(pageHTML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("var external = 2;"), 0o644))

	page, err := NewLoader(nil).LoadPage(context.Background(), filepath.Join(dir, "page.html"))
	require.NoError(t, err)

	assert.Equal(t, 320.0, page.Document.Window().InnerWidth())
	require.Len(t, page.Scripts, 2)
	assert.Equal(t, "var external = 2;", page.Scripts[0].Code)
	assert.Equal(t, filepath.Join(dir, "app.js"), page.Scripts[0].Name)
	assert.Equal(t, "var inline = 1;", page.Scripts[1].Code)
	assert.NotNil(t, page.Document.GetElementByID("ref"))
}

func TestLoadPage_HTTP(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/pages/index.html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(pageHTML))
	})
	mux.HandleFunc("/pages/app.js", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "tester" {
			http.Error(w, "bad agent", http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte("var served = 3;"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, err := NewClient(WithUserAgent("tester"))
	require.NoError(t, err)
	page, err := NewLoader(client).LoadPage(context.Background(), srv.URL+"/pages/index.html")
	require.NoError(t, err)
	require.Len(t, page.Scripts, 2)
	assert.Equal(t, "var served = 3;", page.Scripts[0].Code)
	assert.Equal(t, srv.URL+"/pages/app.js", page.Scripts[0].Name)
}

func TestLoadPage_MissingScriptIsSkipped(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.html"), []byte(pageHTML), 0o644))

	page, err := NewLoader(nil).LoadPage(context.Background(), filepath.Join(dir, "page.html"))
	require.NoError(t, err)
	assert.Empty(t, page.Scripts[0].Code)
	assert.Equal(t, "app.js", page.Scripts[0].Src)
}

func TestLoad_Errors(t *testing.T) {
	l := NewLoader(nil)
	ctx := context.Background()

	_, err := l.Load(ctx, "ftp://example.com/page.html")
	assert.True(t, errors.Is(err, ErrUnsupportedScheme))

	_, err = l.Load(ctx, "http://example.com/page.html")
	assert.True(t, errors.Is(err, ErrUnsupportedScheme), "http without a client")

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	client, err := NewClient()
	require.NoError(t, err)
	res, err := NewLoader(client).Load(ctx, srv.URL+"/missing")
	assert.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	_, err = l.LoadPage(ctx, filepath.Join(t.TempDir(), "nope.html"))
	assert.Error(t, err)
}
