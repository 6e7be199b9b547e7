package monitor

import (
	"context"
	"strings"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/yllada/system-monitor/common"
)

// GUIDetector reports which processes are graphical applications.
type GUIDetector interface {
	GUIPIDs(ctx context.Context) (map[int32]bool, error)
}

// launcherEnv is set by desktop launchers on the applications they start.
var launcherEnv = []string{
	"GIO_LAUNCHED_DESKTOP_FILE=",
	"DESKTOP_STARTUP_ID=",
	"BAMF_DESKTOP_FILE_HINT=",
}

// SessionBusDetector treats processes that own a well-known name on the
// session bus, or that were started by a desktop launcher, as GUI
// applications.
type SessionBusDetector struct {
	mu   sync.Mutex
	conn *dbus.Conn
}

// NewSessionBusDetector creates a detector. The bus is connected lazily.
func NewSessionBusDetector() *SessionBusDetector {
	return &SessionBusDetector{}
}

func (d *SessionBusDetector) bus() (*dbus.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn != nil && d.conn.Connected() {
		return d.conn, nil
	}
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, common.WrapError(common.ErrNoSessionBus, err.Error())
	}
	d.conn = conn
	return conn, nil
}

// GUIPIDs returns the set of GUI process ids. Without a session bus only
// launcher environment hints are used.
func (d *SessionBusDetector) GUIPIDs(ctx context.Context) (map[int32]bool, error) {
	pids := make(map[int32]bool)

	busPIDs, busErr := d.busOwners(ctx)
	for _, pid := range busPIDs {
		pids[pid] = true
	}

	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return pids, err
	}
	for _, p := range procs {
		if pids[p.Pid] {
			continue
		}
		env, err := p.EnvironWithContext(ctx)
		if err != nil {
			continue
		}
		if launchedFromDesktop(env) {
			pids[p.Pid] = true
		}
	}

	if busErr != nil {
		common.LogDebug("GUI detection without session bus: %v", busErr)
	}
	return pids, nil
}

func (d *SessionBusDetector) busOwners(ctx context.Context) ([]int32, error) {
	conn, err := d.bus()
	if err != nil {
		return nil, err
	}

	obj := conn.BusObject()
	var names []string
	if err := obj.CallWithContext(ctx, "org.freedesktop.DBus.ListNames", 0).Store(&names); err != nil {
		return nil, err
	}

	seen := make(map[int32]bool)
	var pids []int32
	for _, name := range names {
		if !isApplicationName(name) {
			continue
		}
		var pid uint32
		call := obj.CallWithContext(ctx, "org.freedesktop.DBus.GetConnectionUnixProcessID", 0, name)
		if call.Err != nil || call.Store(&pid) != nil {
			continue
		}
		if !seen[int32(pid)] {
			seen[int32(pid)] = true
			pids = append(pids, int32(pid))
		}
	}
	return pids, nil
}

// Close releases the session bus connection.
func (d *SessionBusDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	return err
}

// isApplicationName filters out unique connection names and desktop
// infrastructure services.
func isApplicationName(name string) bool {
	if strings.HasPrefix(name, ":") {
		return false
	}
	for _, prefix := range []string{
		"org.freedesktop.",
		"org.gtk.",
		"org.a11y.",
		"ca.desrt.",
		"com.deepin.daemon.",
	} {
		if strings.HasPrefix(name, prefix) {
			return false
		}
	}
	return strings.Count(name, ".") >= 2
}

func launchedFromDesktop(env []string) bool {
	for _, kv := range env {
		for _, prefix := range launcherEnv {
			if strings.HasPrefix(kv, prefix) && len(kv) > len(prefix) {
				return true
			}
		}
	}
	return false
}
