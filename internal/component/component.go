// Package component is the drawing map: one map surface with a base tile
// layer and an editable vector layer, the draw/modify/snap interactions for
// the selected mode, the click marker and the last measurement.
package component

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"geodraw/internal/config"
	"geodraw/internal/geom"
	"geodraw/internal/mapview"
	"geodraw/internal/proj"
	"geodraw/internal/tile"
)

var (
	// ErrNotMounted is returned by operations that need a live map.
	ErrNotMounted = errors.New("map not mounted")
	// ErrNoContainer is returned when mounting into a zero sized area.
	ErrNoContainer = errors.New("no area to mount the map into")
	// ErrUnknownMode is returned by ParseMode for names outside Modes.
	ErrUnknownMode = errors.New("unknown drawing mode")
)

// Mode selects the geometry type the draw interaction builds.
type Mode int

const (
	ModePoint Mode = iota
	ModeLine
	ModePolygon
)

// Modes lists every mode in selector order.
var Modes = []Mode{ModePoint, ModeLine, ModePolygon}

func (m Mode) String() string {
	switch m {
	case ModePoint:
		return "Point"
	case ModeLine:
		return "Line"
	case ModePolygon:
		return "Polygon"
	}
	return "Unknown"
}

// Kind is the geometry type drawn in mode m.
func (m Mode) Kind() geom.Kind {
	switch m {
	case ModeLine:
		return geom.KindLineString
	case ModePolygon:
		return geom.KindPolygon
	}
	return geom.KindPoint
}

// ParseMode accepts a mode name or the geometry type it draws.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "point":
		return ModePoint, nil
	case "line", "linestring":
		return ModeLine, nil
	case "polygon":
		return ModePolygon, nil
	}
	return ModePoint, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// MountState tells whether a map surface exists.
type MountState int

const (
	NotMounted MountState = iota
	Mounted
)

func (s MountState) String() string {
	if s == Mounted {
		return "mounted"
	}
	return "not mounted"
}

// Phase is where the user is in the draw cycle.
type Phase int

const (
	Idle Phase = iota
	ModeSelected
	Drawing
	Measured
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case ModeSelected:
		return "mode selected"
	case Drawing:
		return "drawing"
	case Measured:
		return "measured"
	}
	return "unknown"
}

// Options configures a Component. View and Draw come from the loaded
// config.
type Options struct {
	View config.ViewConfig
	Draw config.DrawConfig
	// Fetcher loads base tiles. Nil leaves the base layer empty.
	Fetcher   tile.Fetcher
	CacheSize int
	Logger    zerolog.Logger
}

// Component owns the map for its mounted lifetime. It is driven from a
// single UI loop and is not safe for concurrent use.
type Component struct {
	opts Options
	log  zerolog.Logger

	mode        Mode
	state       MountState
	phase       Phase
	measurement *geom.Measurement
	preload     []geom.Feature

	m      *mapview.Map
	source *geom.Source
	base   *mapview.TileLayer
	vector *mapview.VectorLayer

	draw   *mapview.Draw
	modify *mapview.Modify
	snap   *mapview.Snap
}

// New returns an unmounted component. An invalid configured mode falls back
// to Point.
func New(o Options) *Component {
	c := &Component{opts: o, log: o.Logger.With().Str("component", "map").Logger()}
	mode, err := ParseMode(o.Draw.Mode)
	if err != nil && o.Draw.Mode != "" {
		c.log.Warn().Err(err).Msg("falling back to Point mode")
	}
	c.mode = mode
	return c
}

// Mount creates the map surface sized w x h pixels. Mounting an already
// mounted component only resizes it.
func (c *Component) Mount(w, h int) error {
	if w <= 0 || h <= 0 {
		c.log.Debug().Int("width", w).Int("height", h).Msg("mount deferred")
		return fmt.Errorf("%w: %dx%d", ErrNoContainer, w, h)
	}
	if c.state == Mounted {
		c.m.View().SetSize(w, h)
		return nil
	}

	v := c.opts.View
	c.source = geom.NewSource()
	c.vector = mapview.NewVectorLayer(c.source)
	var tiles *tile.Layer
	if c.opts.Fetcher != nil {
		tiles = tile.NewLayer(c.opts.Fetcher, c.opts.CacheSize)
	}
	c.base = mapview.NewTileLayer(tiles)
	c.m = mapview.New(mapview.Options{
		Center:  proj.FromLonLat(v.CenterLon, v.CenterLat),
		Zoom:    v.Zoom,
		MinZoom: v.MinZoom,
		MaxZoom: v.MaxZoom,
		Layers:  []mapview.Layer{c.base, c.vector},
		Logger:  c.log,
	})
	c.m.View().SetSize(w, h)
	c.m.On(mapview.Click, c.onClick)
	c.installInteractions()

	for _, f := range c.preload {
		c.source.Add(f)
	}
	c.preload = nil

	c.state = Mounted
	c.phase = ModeSelected
	c.log.Info().Int("width", w).Int("height", h).Str("mode", c.mode.String()).Msg("map mounted")
	return nil
}

// Unmount disposes the map. No listener or interaction fires afterwards and
// all drawing state is discarded.
func (c *Component) Unmount() {
	if c.state != Mounted {
		return
	}
	c.m.Dispose()
	c.m, c.source, c.base, c.vector = nil, nil, nil, nil
	c.draw, c.modify, c.snap = nil, nil, nil
	c.measurement = nil
	c.state = NotMounted
	c.phase = Idle
	c.log.Info().Msg("map unmounted")
}

// SetMode switches the drawing mode. On a mounted map the interaction set
// is swapped in place and any sketch is dropped; features and the
// measurement stay.
func (c *Component) SetMode(mode Mode) {
	if mode == c.mode {
		return
	}
	c.log.Debug().Str("from", c.mode.String()).Str("to", mode.String()).Msg("mode change")
	c.mode = mode
	if c.state != Mounted {
		return
	}
	c.removeInteractions()
	c.installInteractions()
	c.phase = ModeSelected
}

func (c *Component) installInteractions() {
	d := c.opts.Draw
	c.draw = mapview.NewDraw(c.source, c.mode.Kind(), d.HitTolerance)
	c.draw.On(c.onDraw)
	c.modify = mapview.NewModify(c.source, d.HitTolerance)
	c.modify.OnModifyEnd(func(f geom.Feature) {
		c.log.Debug().Int("feature", f.ID).Str("kind", f.Kind.String()).Msg("modify end")
	})
	c.snap = mapview.NewSnap(c.source, d.SnapTolerance)

	c.m.AddInteraction(c.draw)
	c.m.AddInteraction(c.modify)
	c.m.AddInteraction(c.snap)
}

func (c *Component) removeInteractions() {
	for _, i := range []mapview.Interaction{c.draw, c.modify, c.snap} {
		c.m.RemoveInteraction(i)
	}
}

func (c *Component) onClick(ev *mapview.Event) {
	lon, lat := proj.ToLonLat(ev.Coordinate)
	c.log.Debug().Float64("lon", lon).Float64("lat", lat).Msg("clicked coordinates")

	c.source.Clear()
	if c.mode != ModePoint {
		return
	}
	marker := geom.NewPoint(ev.Coordinate)
	style := geom.MarkerStyle
	marker.Style = &style
	c.source.Add(marker)
}

func (c *Component) onDraw(ev mapview.DrawEvent) {
	switch ev.Type {
	case mapview.DrawStart:
		c.phase = Drawing
	case mapview.DrawAbort:
		c.phase = ModeSelected
	case mapview.DrawEnd:
		m, err := geom.Measure(ev.Feature)
		if err != nil {
			if !errors.Is(err, geom.ErrNotMeasurable) {
				c.log.Warn().Err(err).Str("kind", ev.Feature.Kind.String()).Msg("measurement failed")
			}
			c.phase = ModeSelected
			return
		}
		c.measurement = &m
		c.phase = Measured
		c.log.Info().Str("kind", ev.Feature.Kind.String()).Float64("value", m.Value).Msg("draw end")
	}
}

// HandlePointer forwards a pointer event at pixel px to the map.
func (c *Component) HandlePointer(t mapview.EventType, px [2]float64) error {
	if c.state != Mounted {
		return ErrNotMounted
	}
	c.m.Dispatch(t, px)
	return nil
}

// Finish completes the line or polygon being sketched.
func (c *Component) Finish() error {
	if c.state != Mounted {
		return ErrNotMounted
	}
	return c.draw.Finish()
}

// Abort drops the current sketch.
func (c *Component) Abort() {
	if c.state == Mounted {
		c.draw.Abort()
	}
}

// RemoveLastPoint undoes the last sketch vertex.
func (c *Component) RemoveLastPoint() {
	if c.state == Mounted {
		c.draw.RemoveLastPoint()
	}
}

// AddFeatures stores fs in the vector source. Before mounting they are kept
// and added when the map is created.
func (c *Component) AddFeatures(fs []geom.Feature) {
	if c.state != Mounted {
		c.preload = append(c.preload, fs...)
		return
	}
	for _, f := range fs {
		c.source.Add(f)
	}
}

// RemoveFeature deletes one stored feature.
func (c *Component) RemoveFeature(id int) bool {
	if c.state != Mounted {
		return false
	}
	return c.source.Remove(id)
}

func (c *Component) Mode() Mode           { return c.mode }
func (c *Component) State() MountState    { return c.state }
func (c *Component) Phase() Phase         { return c.phase }
func (c *Component) Mounted() bool        { return c.state == Mounted }
func (c *Component) Map() *mapview.Map    { return c.m }
func (c *Component) Source() *geom.Source { return c.source }

// Measurement returns the last line length or polygon area.
func (c *Component) Measurement() (geom.Measurement, bool) {
	if c.measurement == nil {
		return geom.Measurement{}, false
	}
	return *c.measurement, true
}

// Draw returns the active draw interaction, nil when unmounted.
func (c *Component) Draw() *mapview.Draw { return c.draw }

// BaseLayer returns the tile layer, nil when unmounted.
func (c *Component) BaseLayer() *mapview.TileLayer { return c.base }

// VectorLayer returns the feature layer, nil when unmounted.
func (c *Component) VectorLayer() *mapview.VectorLayer { return c.vector }
