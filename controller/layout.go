package controller

import "github.com/yllada/system-monitor/common"

// SidebarWidth picks the status sidebar width for a screen. When 20% of the
// screen exceeds minWidth the sidebar takes that share while maximized and
// minWidth otherwise. On narrower screens ok is false and the sidebar is
// left alone.
func SidebarWidth(screenWidth int, maximized bool, minWidth int) (width int, ok bool) {
	share := common.SidebarScreenRatio * float64(screenWidth)
	if share <= float64(minWidth) {
		return 0, false
	}
	if maximized {
		return int(share), true
	}
	return minWidth, true
}
