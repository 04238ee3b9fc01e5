package tile

import (
	"context"
	"image"
	"image/color"
	"sync"

	"github.com/paulmach/orb/maptile"

	"geodraw/internal/proj"
)

type entry struct {
	img     image.Image
	err     error
	pending bool
	used    uint64
}

// Layer caches fetched tiles. Request and Load may be called from different
// goroutines; failed tiles stay failed until evicted.
type Layer struct {
	mu      sync.Mutex
	fetcher Fetcher
	entries map[maptile.Tile]*entry
	max     int
	clock   uint64

	ctx    context.Context
	cancel context.CancelFunc
}

func NewLayer(f Fetcher, maxTiles int) *Layer {
	if maxTiles <= 0 {
		maxTiles = 256
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Layer{
		fetcher: f,
		entries: make(map[maptile.Tile]*entry),
		max:     maxTiles,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Request marks unknown tiles as pending and returns them for loading.
func (l *Layer) Request(ts []maptile.Tile) []maptile.Tile {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ctx.Err() != nil {
		return nil
	}
	var todo []maptile.Tile
	for _, t := range ts {
		if _, ok := l.entries[t]; ok {
			continue
		}
		l.clock++
		l.entries[t] = &entry{pending: true, used: l.clock}
		todo = append(todo, t)
	}
	l.evict()
	return todo
}

// Load fetches t and stores the result. It blocks until the fetch finishes
// or the layer is closed.
func (l *Layer) Load(t maptile.Tile) error {
	img, err := l.fetcher.Fetch(l.ctx, t)
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[t]
	if !ok {
		l.clock++
		e = &entry{used: l.clock}
		l.entries[t] = e
	}
	e.img, e.err, e.pending = img, err, false
	l.evict()
	return err
}

// Get returns a loaded tile image.
func (l *Layer) Get(t maptile.Tile) (image.Image, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[t]
	if !ok || e.img == nil {
		return nil, false
	}
	l.clock++
	e.used = l.clock
	return e.img, true
}

// ColorAt samples the base layer at a projected coordinate using level z.
func (l *Layer) ColorAt(c proj.Coord, z maptile.Zoom) (color.Color, bool) {
	t, px, py, ok := locate(c, z)
	if !ok {
		return nil, false
	}
	img, ok := l.Get(t)
	if !ok {
		return nil, false
	}
	b := img.Bounds()
	x := b.Min.X + px*b.Dx()/Size
	y := b.Min.Y + py*b.Dy()/Size
	return img.At(x, y), true
}

// Stats counts cached tiles by state.
func (l *Layer) Stats() (loaded, pending, failed int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		switch {
		case e.pending:
			pending++
		case e.err != nil:
			failed++
		default:
			loaded++
		}
	}
	return loaded, pending, failed
}

// Close cancels in-flight fetches and rejects further requests.
func (l *Layer) Close() {
	l.cancel()
}

// evict drops least recently used settled entries above the bound.
// Callers hold l.mu.
func (l *Layer) evict() {
	for len(l.entries) > l.max {
		var victim maptile.Tile
		var oldest uint64
		found := false
		for t, e := range l.entries {
			if e.pending {
				continue
			}
			if !found || e.used < oldest {
				victim, oldest, found = t, e.used, true
			}
		}
		if !found {
			return
		}
		delete(l.entries, victim)
	}
}
