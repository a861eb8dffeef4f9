package generator

import (
	"strings"

	"readmegen/internal/params"

	"github.com/mattn/go-runewidth"
)

// minCellWidth keeps delimiter cells at least "---".
const minCellWidth = 3

var tableHeader = []string{"Name", "Description", "Value"}

// cellWidth measures cells with ambiguous-width runes as narrow regardless of
// locale or RUNEWIDTH_EASTASIAN, so output is the same on every machine.
var cellWidth = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// RenderTable converts records into an aligned markdown table with the
// columns Name, Description and Value. Name and value are rendered as inline
// code. The result has no trailing newline.
func RenderTable(records []params.Record) string {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, tableHeader)
	for _, r := range records {
		rows = append(rows, []string{
			"`" + escapePipes(r.Name) + "`",
			escapePipes(r.Description),
			"`" + escapePipes(r.DisplayValue()) + "`",
		})
	}

	widths := make([]int, len(tableHeader))
	for i := range widths {
		widths[i] = minCellWidth
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := cellWidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, formatRow(rows[0], widths))
	delim := make([]string, len(widths))
	for i, w := range widths {
		delim[i] = strings.Repeat("-", w)
	}
	lines = append(lines, formatRow(delim, widths))
	for _, row := range rows[1:] {
		lines = append(lines, formatRow(row, widths))
	}
	return strings.Join(lines, "\n")
}

// escapePipes backslash-escapes every '|' that is not already escaped so it
// cannot split a table cell.
func escapePipes(s string) string {
	if !strings.Contains(s, "|") {
		return s
	}
	var sb strings.Builder
	escaped := false
	for _, r := range s {
		if r == '|' && !escaped {
			sb.WriteByte('\\')
		}
		escaped = r == '\\' && !escaped
		sb.WriteRune(r)
	}
	return sb.String()
}

func formatRow(cells []string, widths []int) string {
	var sb strings.Builder
	sb.WriteString("|")
	for i, cell := range cells {
		sb.WriteString(" ")
		sb.WriteString(cellWidth.FillRight(cell, widths[i]))
		sb.WriteString(" |")
	}
	return sb.String()
}

// RenderSection renders one sub-heading followed by its parameter table.
// headingPrefix is the heading marker of the sub-heading, one level deeper
// than the Parameters heading.
func RenderSection(section params.Section, headingPrefix string) string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(headingPrefix + " " + section.Title + "\n\n")
	sb.WriteString(RenderTable(section.Params))
	sb.WriteString("\n\n")
	return sb.String()
}

// RenderAllSections concatenates every section in order.
func RenderAllSections(group params.Group, headingPrefix string) string {
	var sb strings.Builder
	for _, sec := range group {
		sb.WriteString(RenderSection(sec, headingPrefix))
	}
	return sb.String()
}
