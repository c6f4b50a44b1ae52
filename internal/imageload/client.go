package imageload

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	cache "github.com/patrickmn/go-cache"
)

// Loader resolves an image reference to decoded pixels.
// This interface is implemented by *Client and can be used for testing.
type Loader interface {
	Load(ctx context.Context, src string) (Asset, error)
}

// Ensure Client implements Loader at compile time.
var _ Loader = (*Client)(nil)

// Asset is a decoded image.
type Asset struct {
	Source string
	Image  image.Image
	Width  int
	Height int
}

// Ratio returns width/height, or 0 when the height is unknown.
func (a Asset) Ratio() float64 {
	if a.Height == 0 {
		return 0
	}
	return float64(a.Width) / float64(a.Height)
}

// Client loads images from local paths and http(s) URLs.
type Client struct {
	baseDir   string
	http      *http.Client
	userAgent string
	memo      *cache.Cache
}

// Options configure a Client.
type Options struct {
	// BaseDir anchors relative paths. Empty uses the working directory.
	BaseDir string
	// Timeout bounds remote requests. Zero uses the default.
	Timeout time.Duration
}

const (
	defaultUserAgent = "vgallery/0.1"
	requestTimeout   = 10 * time.Second
	memoTTL          = 10 * time.Minute
	memoSweep        = 5 * time.Minute
)

// NewClient builds a Client.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = requestTimeout
	}
	return &Client{
		baseDir:   strings.TrimSpace(opts.BaseDir),
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
		memo:      cache.New(memoTTL, memoSweep),
	}
}

// Load fetches and decodes src. Successful decodes are memoized; failures are
// not, so a later call retries.
func (c *Client) Load(ctx context.Context, src string) (Asset, error) {
	if c == nil {
		return Asset{}, fmt.Errorf("client is nil")
	}
	src = strings.TrimSpace(src)
	if src == "" {
		return Asset{}, fmt.Errorf("image source is empty")
	}
	if v, ok := c.memo.Get(src); ok {
		return v.(Asset), nil
	}
	if err := ctx.Err(); err != nil {
		return Asset{}, err
	}

	var (
		body io.ReadCloser
		err  error
	)
	if isRemote(src) {
		body, err = c.fetch(ctx, src)
	} else {
		body, err = c.open(src)
	}
	if err != nil {
		return Asset{}, err
	}
	defer func() { _ = body.Close() }()

	img, err := decode(body)
	if err != nil {
		return Asset{}, fmt.Errorf("decode %s: %w", src, err)
	}
	bounds := img.Bounds()
	asset := Asset{
		Source: src,
		Image:  img,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}
	c.memo.Set(src, asset, cache.DefaultExpiration)
	return asset, nil
}

func (c *Client) fetch(ctx context.Context, raw string) (io.ReadCloser, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse url %q: %w", raw, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "image/*")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	if resp.StatusCode >= 400 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetch %s returned status %d", u.Redacted(), resp.StatusCode)
	}
	return resp.Body, nil
}

func (c *Client) open(src string) (io.ReadCloser, error) {
	path, err := c.resolvePath(src)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	return file, nil
}

func (c *Client) resolvePath(src string) (string, error) {
	trimmed := strings.TrimPrefix(src, "file://")
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	if !filepath.IsAbs(trimmed) && c.baseDir != "" {
		trimmed = filepath.Join(c.baseDir, trimmed)
	}
	return filepath.Abs(trimmed)
}

func isRemote(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// decode sniffs WebP, which the standard registry does not know, and hands
// everything else to imaging so EXIF orientation is honoured.
func decode(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	header, _ := br.Peek(12)
	if isWebP(header) {
		return webp.Decode(br)
	}
	return imaging.Decode(br, imaging.AutoOrientation(true))
}

func isWebP(header []byte) bool {
	return len(header) >= 12 &&
		bytes.Equal(header[0:4], []byte("RIFF")) &&
		bytes.Equal(header[8:12], []byte("WEBP"))
}
