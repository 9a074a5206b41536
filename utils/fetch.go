package utils

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ErrNotImage is returned when a source does not hold image data.
var ErrNotImage = errors.New("not an image")

// sniffLen is the number of bytes http.DetectContentType looks at.
const sniffLen = 512

// Fetch downloads the resource found at uri. The caller has to close the returned body.
// Responses with a non 2xx status code are reported as errors.
func Fetch(ctx context.Context, uri string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create request for %s: %w", uri, err)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to download %s: %w", uri, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		res.Body.Close()
		return nil, fmt.Errorf("unable to download %s: status %v", uri, res.Status)
	}
	return res.Body, nil
}

// IsValidURL tests a string to determine if it is a well-structured http(s) url.
func IsValidURL(uri string) bool {
	if _, err := url.ParseRequestURI(uri); err != nil {
		return false
	}
	u, err := url.Parse(uri)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// SniffImage checks the MIME type of the buffered content without consuming it.
// It returns ErrNotImage when the content is not recognized as an image.
func SniffImage(r *bufio.Reader) (string, error) {
	// Peek returns io.EOF for short inputs, which are sniffed as they are.
	buf, err := r.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	ctype := http.DetectContentType(buf)
	if !strings.HasPrefix(ctype, "image/") {
		return ctype, fmt.Errorf("%w: detected %s", ErrNotImage, ctype)
	}
	return ctype, nil
}
