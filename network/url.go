package network

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// ErrNotDataURL is returned by ParseDataURL for other schemes.
var ErrNotDataURL = errors.New("not a data URL")

// Resolve resolves ref against base. A base without a scheme is a file
// path; relative refs then resolve against its directory.
func Resolve(base, ref string) (string, error) {
	if base == "" || IsDataURL(ref) {
		return ref, nil
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid reference URL: %w", err)
	}
	if refURL.IsAbs() {
		return ref, nil
	}
	if !hasScheme(base) {
		if filepath.IsAbs(ref) {
			return ref, nil
		}
		return filepath.Join(filepath.Dir(base), filepath.FromSlash(ref)), nil
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	return baseURL.ResolveReference(refURL).String(), nil
}

// IsDataURL reports whether s is a data URL.
func IsDataURL(s string) bool {
	return strings.HasPrefix(strings.ToLower(s), "data:")
}

// DataURL is a parsed data URL.
type DataURL struct {
	MediaType string
	Data      []byte
}

// ParseDataURL parses data:[<mediatype>][;base64],<data>.
func ParseDataURL(s string) (*DataURL, error) {
	if !IsDataURL(s) {
		return nil, ErrNotDataURL
	}
	meta, data, ok := strings.Cut(s[len("data:"):], ",")
	if !ok {
		return nil, fmt.Errorf("invalid data URL: missing comma")
	}

	result := &DataURL{MediaType: "text/plain"}
	isBase64 := false
	for i, part := range strings.Split(meta, ";") {
		switch {
		case part == "base64":
			isBase64 = true
		case i == 0 && part != "":
			result.MediaType = part
		}
	}

	if isBase64 {
		decoded, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 data: %w", err)
		}
		result.Data = decoded
		return result, nil
	}
	decoded, err := url.PathUnescape(data)
	if err != nil {
		return nil, fmt.Errorf("failed to URL-decode data: %w", err)
	}
	result.Data = []byte(decoded)
	return result, nil
}

// hasScheme reports whether s looks like a URL rather than a file path.
// Windows drive letters are single characters and do not count.
func hasScheme(s string) bool {
	scheme, _, ok := strings.Cut(s, ":")
	if !ok || len(scheme) < 2 {
		return false
	}
	for _, r := range scheme {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.') {
			return false
		}
	}
	return true
}
