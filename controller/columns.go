package controller

import "strings"

// Column identifies a process list column.
type Column int

const (
	ColumnName Column = iota
	ColumnCPU
	ColumnMemory
	ColumnDiskWrite
	ColumnDiskRead
	ColumnDownload
	ColumnUpload
	ColumnPID

	columnCount
)

var columnNames = [columnCount]string{
	"name",
	"cpu",
	"memory",
	"disk_write",
	"disk_read",
	"download",
	"upload",
	"pid",
}

var columnTitles = [columnCount]string{
	"Name",
	"CPU",
	"Memory",
	"Disk write",
	"Disk read",
	"Download",
	"Upload",
	"PID",
}

// Columns returns every column in display order.
func Columns() []Column {
	out := make([]Column, columnCount)
	for i := range out {
		out[i] = Column(i)
	}
	return out
}

// String returns the identifier stored in the process_columns preference.
func (c Column) String() string {
	if c < 0 || c >= columnCount {
		return "unknown"
	}
	return columnNames[c]
}

// Title returns the column header shown to the user.
func (c Column) Title() string {
	if c < 0 || c >= columnCount {
		return ""
	}
	return columnTitles[c]
}

// ColumnFlags holds per-column visibility in display order.
type ColumnFlags [columnCount]bool

// AllColumns returns flags with every column visible.
func AllColumns() ColumnFlags {
	var f ColumnFlags
	for i := range f {
		f[i] = true
	}
	return f
}

// Visible reports whether column c is shown.
func (f ColumnFlags) Visible(c Column) bool {
	if c < 0 || c >= columnCount {
		return false
	}
	return f[c]
}

// With returns a copy of f with column c set to visible. The name column
// cannot be hidden.
func (f ColumnFlags) With(c Column, visible bool) ColumnFlags {
	if c < 0 || c >= columnCount {
		return f
	}
	if c == ColumnName {
		visible = true
	}
	f[c] = visible
	return f
}

// EncodeColumns serializes flags as "name" followed by every other visible
// column in display order, joined with commas. The name flag is ignored.
func EncodeColumns(flags ColumnFlags) string {
	parts := []string{columnNames[ColumnName]}
	for c := ColumnCPU; c < columnCount; c++ {
		if flags[c] {
			parts = append(parts, columnNames[c])
		}
	}
	return strings.Join(parts, ",")
}

// DecodeColumns sets each flag when the stored string contains the column
// identifier. Unknown tokens are ignored.
func DecodeColumns(stored string) ColumnFlags {
	var flags ColumnFlags
	for c := ColumnName; c < columnCount; c++ {
		flags[c] = strings.Contains(stored, columnNames[c])
	}
	return flags
}
