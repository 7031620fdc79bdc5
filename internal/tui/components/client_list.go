package components

import (
	"strings"

	"github.com/rgehrsitz/finhealth/internal/tui/tuistyles"
)

// ClientEntry is one row of the client selector
type ClientEntry struct {
	Name     string
	Rejected bool
}

// ClientList renders the selector with a cursor on the selected row. Rejected clients
// are marked so the user knows the dashboard will show N/A.
func ClientList(entries []ClientEntry, selectedIndex int) string {
	if len(entries) == 0 {
		return tuistyles.InfoStyle.Render("No clients")
	}

	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		name := e.Name
		if e.Rejected {
			name += " (N/A)"
		}
		if i == selectedIndex {
			lines = append(lines, tuistyles.SelectedItemStyle.Render("▸ "+name))
		} else {
			lines = append(lines, tuistyles.UnselectedItemStyle.Render("  "+name))
		}
	}
	return strings.Join(lines, "\n")
}
