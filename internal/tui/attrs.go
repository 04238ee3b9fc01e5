package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"geodraw/internal/geom"
	"geodraw/internal/proj"
)

// refreshAttrs rebuilds the feature table from the vector source.
func (m *Model) refreshAttrs() {
	cols, rows, ids := m.buildAttributes()
	if len(rows) == 0 {
		m.showAttrs = false
		m.status = "no features on the map"
		return
	}
	tcols := make([]table.Column, 0, len(cols))
	for _, c := range cols {
		tcols = append(tcols, table.Column{Title: c.title, Width: c.width})
	}
	trows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		trows = append(trows, table.Row(r))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
	if m.tbl.Cursor() >= len(trows) {
		m.tbl.SetCursor(len(trows) - 1)
	}
	m.rowIDs = ids
}

type attrColumn struct {
	title string
	width int
}

// buildAttributes lists one row per stored feature.
func (m *Model) buildAttributes() ([]attrColumn, [][]string, []int) {
	cols := []attrColumn{
		{"#", 4},
		{"id", 5},
		{"kind", 10},
		{"vertices", 8},
		{"measure", 24},
		{"lon", 11},
		{"lat", 10},
	}
	src := m.comp.Source()
	if src == nil {
		return cols, nil, nil
	}
	var rows [][]string
	var ids []int
	for i, f := range src.Features() {
		measure := ""
		if ms, err := geom.Measure(*f); err == nil {
			measure = ms.Label()
		}
		lon, lat := "", ""
		if len(f.Rings) > 0 && len(f.Rings[0]) > 0 {
			x, y := proj.ToLonLat(f.Rings[0][0])
			lon, lat = fmt.Sprintf("%.5f", x), fmt.Sprintf("%.5f", y)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", f.ID),
			f.Kind.String(),
			fmt.Sprintf("%d", f.VertexCount()),
			truncate(measure, 24),
			lon,
			lat,
		})
		ids = append(ids, f.ID)
	}
	return cols, rows, ids
}

// deleteSelected removes the feature under the table cursor.
func (m *Model) deleteSelected() {
	i := m.tbl.Cursor()
	if i < 0 || i >= len(m.rowIDs) {
		return
	}
	id := m.rowIDs[i]
	if m.comp.RemoveFeature(id) {
		m.status = fmt.Sprintf("removed feature #%d", id)
	}
	m.refreshAttrs()
}
