package tui

import (
	"encoding/json"
	"fmt"
	"sort"

	table "github.com/charmbracelet/bubbles/table"
	"github.com/paulmach/orb"
)

// refreshAttrs rebuilds the table from the pivot collection: one row
// per feature, columns the union of property keys. Works for pasted
// input as well since rows never come from the source file.
func (m *Model) refreshAttrs() {
	cols, rows := m.buildAttributes()
	// If there are no rows, disable attributes view to avoid rendering panics
	if len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current collection"
		return
	}
	// map to bubbles table columns/rows
	tcols := make([]table.Column, 0, len(cols)+2)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	tcols = append(tcols, table.Column{Title: "geometry", Width: 12})
	maxColW := 24
	for _, c := range cols {
		w := len(c) + 2
		if w > maxColW {
			w = maxColW
		}
		tcols = append(tcols, table.Column{Title: c, Width: w})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		row := make([]string, 0, len(r)+1)
		row = append(row, fmt.Sprintf("%d", i+1))
		row = append(row, r...)
		trows = append(trows, table.Row(row))
	}
	// Normalize each row to match the number of table columns
	colCount := len(tcols)
	for i := range trows {
		cells := []string(trows[i])
		if len(cells) < colCount {
			pad := make([]string, colCount-len(cells))
			cells = append(cells, pad...)
		} else if len(cells) > colCount {
			cells = cells[:colCount]
		}
		trows[i] = table.Row(cells)
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// buildAttributes returns the sorted union of property keys and one
// row per feature, each row starting with the geometry type.
func (m *Model) buildAttributes() ([]string, [][]string) {
	if m.fc == nil || len(m.fc.Features) == 0 {
		return nil, nil
	}
	var order []string
	seen := map[string]bool{}
	for _, f := range m.fc.Features {
		if f == nil {
			continue
		}
		for k := range f.Properties {
			if !seen[k] {
				seen[k] = true
				order = append(order, k)
			}
		}
	}
	sort.Strings(order)
	rows := make([][]string, 0, len(m.fc.Features))
	for _, f := range m.fc.Features {
		if f == nil {
			continue
		}
		row := make([]string, 0, len(order)+1)
		row = append(row, geometryName(f.Geometry))
		for _, k := range order {
			row = append(row, attrString(f.Properties[k]))
		}
		rows = append(rows, row)
	}
	return order, rows
}

func geometryName(g orb.Geometry) string {
	if g == nil {
		return ""
	}
	return g.GeoJSONType()
}

func attrString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case int:
		return fmt.Sprintf("%d", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}
