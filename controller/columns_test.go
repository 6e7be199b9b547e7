package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeColumns(t *testing.T) {
	tests := []struct {
		name  string
		flags ColumnFlags
		want  string
	}{
		{"name memory pid", ColumnFlags{true, false, true, false, false, false, false, true}, "name,memory,pid"},
		{"all", AllColumns(), "name,cpu,memory,disk_write,disk_read,download,upload,pid"},
		{"none still has name", ColumnFlags{}, "name"},
		{"network only", ColumnFlags{false, false, false, false, false, true, true, false}, "name,download,upload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeColumns(tt.flags))
		})
	}
}

func TestColumns_RoundTrip(t *testing.T) {
	for mask := 0; mask < 1<<columnCount; mask++ {
		var flags ColumnFlags
		for i := range flags {
			flags[i] = mask&(1<<i) != 0
		}
		flags[ColumnName] = true

		assert.Equal(t, flags, DecodeColumns(EncodeColumns(flags)), "mask %08b", mask)
	}
}

func TestDecodeColumns_IgnoresUnknownTokens(t *testing.T) {
	got := DecodeColumns("name,threads,cpu,nice")

	assert.Equal(t, ColumnFlags{true, true, false, false, false, false, false, false}, got)
}

func TestDecodeColumns_Empty(t *testing.T) {
	assert.Equal(t, ColumnFlags{}, DecodeColumns(""))
}

func TestColumn_StringAndTitle(t *testing.T) {
	assert.Equal(t, "disk_write", ColumnDiskWrite.String())
	assert.Equal(t, "Disk write", ColumnDiskWrite.Title())
	assert.Equal(t, "unknown", Column(42).String())
	assert.Len(t, Columns(), 8)
}

func TestSidebarWidth(t *testing.T) {
	tests := []struct {
		screen    int
		maximized bool
		want      int
		ok        bool
	}{
		{2000, true, 400, true},
		{2000, false, 200, true},
		{500, true, 0, false},
		{500, false, 0, false},
		{1001, true, 200, true},
		{1920, true, 384, true},
	}

	for _, tt := range tests {
		width, ok := SidebarWidth(tt.screen, tt.maximized, 200)
		assert.Equal(t, tt.ok, ok, "screen %d", tt.screen)
		assert.Equal(t, tt.want, width, "screen %d maximized=%v", tt.screen, tt.maximized)
	}
}
