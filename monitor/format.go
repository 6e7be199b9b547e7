package monitor

import (
	"fmt"
	"strconv"

	"github.com/yllada/system-monitor/common"
)

// FormatColumn renders field column of p for display. column is one of
// the identifiers stored in the process_columns preference.
func FormatColumn(column string, p ProcessInfo) string {
	switch column {
	case "name":
		return p.Name
	case "cpu":
		return fmt.Sprintf("%.1f%%", p.CPUPercent)
	case "memory":
		return common.FormatBytes(p.MemoryRSS)
	case "disk_write":
		return common.FormatRate(p.DiskWriteRate)
	case "disk_read":
		return common.FormatRate(p.DiskReadRate)
	case "download":
		return common.FormatRate(p.DownloadRate)
	case "upload":
		return common.FormatRate(p.UploadRate)
	case "pid":
		return strconv.Itoa(int(p.PID))
	case "user":
		return p.User
	}
	return ""
}
