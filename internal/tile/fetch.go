package tile

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb/maptile"
)

// ErrStatus is returned for non-200 tile responses.
var ErrStatus = errors.New("unexpected tile status")

// Fetcher loads one raster tile.
type Fetcher interface {
	Fetch(ctx context.Context, t maptile.Tile) (image.Image, error)
}

// HTTPFetcher fetches tiles from an XYZ URL template such as
// https://tile.openstreetmap.org/{z}/{x}/{y}.png.
type HTTPFetcher struct {
	URL       string
	UserAgent string
	Client    *http.Client
}

func NewHTTPFetcher(url, userAgent string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		URL:       url,
		UserAgent: userAgent,
		Client:    &http.Client{Timeout: timeout},
	}
}

// TileURL expands the template for t.
func (f *HTTPFetcher) TileURL(t maptile.Tile) string {
	r := strings.NewReplacer(
		"{z}", strconv.Itoa(int(t.Z)),
		"{x}", strconv.FormatUint(uint64(t.X), 10),
		"{y}", strconv.FormatUint(uint64(t.Y), 10),
	)
	return r.Replace(f.URL)
}

func (f *HTTPFetcher) Fetch(ctx context.Context, t maptile.Tile) (image.Image, error) {
	url := f.TileURL(t)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tile %d/%d/%d: %w", t.Z, t.X, t.Y, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tile %d/%d/%d: %w: %s", t.Z, t.X, t.Y, ErrStatus, resp.Status)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tile %d/%d/%d: decode: %w", t.Z, t.X, t.Y, err)
	}
	return img, nil
}
