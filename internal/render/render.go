// Package render formats contacts and status lines for terminal output.
package render

import (
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

var (
	accent = lipgloss.Color("#00C832")
	alert  = lipgloss.Color("#FF5F5F")
	muted  = lipgloss.Color("#AAAAAA")
)

// Styles are bound to one output so colour is only emitted when that output
// is a terminal.
type Styles struct {
	renderer *lipgloss.Renderer

	Title  lipgloss.Style
	Warn   lipgloss.Style
	OK     lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
}

// New returns styles for out.
func New(out io.Writer) Styles {
	r := lipgloss.NewRenderer(out)
	return Styles{
		renderer: r,
		Title:    r.NewStyle().Foreground(accent).Bold(true),
		Warn:     r.NewStyle().Foreground(alert),
		OK:       r.NewStyle().Foreground(accent),
		header:   r.NewStyle().Foreground(accent).Bold(true).Padding(0, 1),
		cell:     r.NewStyle().Padding(0, 1),
	}
}

// Table renders contacts as a bordered table in the given order. When
// numbered is true a leading "#" column holds 1-based positions for
// selection.
func (s Styles) Table(contacts []types.Contact, numbered bool) string {
	headers := []string{"ID", "Name", "Phone", "Email"}
	if numbered {
		headers = append([]string{"#"}, headers...)
	}

	rows := make([][]string, 0, len(contacts))
	for i, c := range contacts {
		row := []string{strconv.Itoa(c.ID), c.Name, c.Phone, c.Email}
		if numbered {
			row = append([]string{strconv.Itoa(i + 1)}, row...)
		}
		rows = append(rows, row)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.renderer.NewStyle().Foreground(muted)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header
			}
			return s.cell
		}).
		String()
}
