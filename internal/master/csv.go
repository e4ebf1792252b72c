// Package master parses the spreadsheet-exported master feed that drives the
// form dropdowns (factories, people, species, suppliers, ...).
package master

import (
	"strings"

	"fishplant-backend/internal/models"
)

// ParseCSV converts the master CSV feed into the category→options mapping.
//
// The feed is a plain comma/newline grid with no quoting: row 0 holds human
// labels (ignored), row 1 the category key per column, rows 2+ the option
// values. Blank rows are dropped, blank cells are skipped, and columns whose
// key cell is blank are dropped entirely.
func ParseCSV(text string) models.Master {
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		cells := strings.Split(line, ",")
		blank := true
		for i, c := range cells {
			cells[i] = strings.TrimSpace(c)
			if cells[i] != "" {
				blank = false
			}
		}
		if !blank {
			rows = append(rows, cells)
		}
	}
	if len(rows) < 2 {
		return models.Master{}
	}

	keys := rows[1]
	out := models.Master{}
	for col, key := range keys {
		if key == "" {
			continue
		}
		var options []string
		for _, row := range rows[2:] {
			if col < len(row) && row[col] != "" {
				options = append(options, row[col])
			}
		}
		out[key] = options
	}
	return out
}
