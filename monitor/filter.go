package monitor

import (
	"strconv"

	"github.com/yllada/system-monitor/common"
)

// Filter selects the processes shown by a tab.
type Filter int

const (
	FilterGUI Filter = iota
	FilterMine
	FilterAll
)

// String returns the tab label of the filter.
func (f Filter) String() string {
	switch f {
	case FilterGUI:
		return "Applications"
	case FilterMine:
		return "My processes"
	default:
		return "All processes"
	}
}

// FilterForTab maps a process tab index to its filter. Indices other than
// the first two select all processes.
func FilterForTab(index int) Filter {
	switch index {
	case common.TabGUIApps:
		return FilterGUI
	case common.TabMyProcesses:
		return FilterMine
	default:
		return FilterAll
	}
}

// ParseFilter accepts the names used on the command line.
func ParseFilter(s string) (Filter, bool) {
	switch s {
	case "gui", "apps", "applications":
		return FilterGUI, true
	case "mine", "me", "user":
		return FilterMine, true
	case "all", "":
		return FilterAll, true
	}
	return FilterAll, false
}

// Matches reports whether p belongs to the filter. uid is the current
// user's id.
func (f Filter) Matches(p ProcessInfo, uid uint32) bool {
	switch f {
	case FilterGUI:
		return p.GUI
	case FilterMine:
		return p.UID == uid
	default:
		return true
	}
}

// MatchesQuery reports whether query is a case-insensitive substring of
// the process name, user or pid. An empty query matches everything.
func MatchesQuery(p ProcessInfo, query string) bool {
	if query == "" {
		return true
	}
	return common.ContainsFold(p.Name, query) ||
		common.ContainsFold(p.User, query) ||
		common.ContainsFold(strconv.Itoa(int(p.PID)), query)
}

// Apply returns the processes matching both the filter and the query.
func Apply(procs []ProcessInfo, f Filter, uid uint32, query string) []ProcessInfo {
	out := make([]ProcessInfo, 0, len(procs))
	for _, p := range procs {
		if f.Matches(p, uid) && MatchesQuery(p, query) {
			out = append(out, p)
		}
	}
	return out
}
