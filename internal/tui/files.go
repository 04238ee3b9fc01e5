package tui

import (
	"fmt"
	"path/filepath"

	"geodraw/internal/geom"
	"geodraw/internal/proj"
)

// loadPath reads a supported file and adds its features to the map.
func (m *Model) loadPath(p string) {
	fs, err := geom.Load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		m.log.Error().Err(err).Str("path", p).Msg("load failed")
		return
	}
	m.selPath = p
	m.comp.AddFeatures(fs)
	if m.comp.Mounted() {
		m.fitTo(bboxOf(fs))
	} else {
		m.fitPending = true
	}
	pts, ls, poly := countKinds(fs)
	m.status = "loaded: " + filepath.Base(p) +
		fmt.Sprintf("  counts: pts=%d ls=%d poly=%d", pts, ls, poly)
	m.log.Info().Str("path", p).Int("features", len(fs)).Msg("file loaded")
}

// fitTo frames b in the map view.
func (m *Model) fitTo(b geom.BBox) {
	if !m.comp.Mounted() || b.Empty() {
		return
	}
	m.fitPending = false
	m.comp.Map().View().Fit(proj.Extent{MinX: b.MinX, MinY: b.MinY, MaxX: b.MaxX, MaxY: b.MaxY})
}

func bboxOf(fs []geom.Feature) geom.BBox {
	b := geom.EmptyBBox()
	for _, f := range fs {
		fb := f.BBox()
		if fb.Empty() {
			continue
		}
		b = b.Extend(geom.Coord{fb.MinX, fb.MinY}).Extend(geom.Coord{fb.MaxX, fb.MaxY})
	}
	return b
}

func countKinds(fs []geom.Feature) (pts, ls, poly int) {
	for _, f := range fs {
		switch f.Kind {
		case geom.KindPoint:
			pts++
		case geom.KindLineString:
			ls++
		case geom.KindPolygon:
			poly++
		}
	}
	return pts, ls, poly
}
