// Package ui provides the graphical user interface for System Monitor.
// This file contains the desktop notification sender.
package ui

import (
	"os/exec"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/yllada/system-monitor/common"
)

const (
	notifyDest      = "org.freedesktop.Notifications"
	notifyPath      = "/org/freedesktop/Notifications"
	notifyMethod    = "org.freedesktop.Notifications.Notify"
	notifyTimeoutMS = int32(5000)
)

// DesktopNotifier sends notifications over the session bus and falls back
// to notify-send when the bus is unavailable.
type DesktopNotifier struct {
	mu      sync.Mutex
	enabled bool
	conn    *dbus.Conn
}

// NewDesktopNotifier creates a notifier.
func NewDesktopNotifier(enabled bool) *DesktopNotifier {
	return &DesktopNotifier{enabled: enabled}
}

// SetEnabled turns notifications on or off.
func (n *DesktopNotifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// Notify implements common.Notifier.
func (n *DesktopNotifier) Notify(title, message string, urgency common.Urgency) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.enabled {
		return nil
	}

	conn, err := n.busLocked()
	if err != nil {
		return notifySend(title, message, urgency)
	}

	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(byte(urgency)),
	}
	call := conn.Object(notifyDest, dbus.ObjectPath(notifyPath)).Call(
		notifyMethod, 0,
		common.AppName, uint32(0), iconForUrgency(urgency),
		title, message, []string{}, hints, notifyTimeoutMS,
	)
	return call.Err
}

func (n *DesktopNotifier) busLocked() (*dbus.Conn, error) {
	if n.conn != nil && n.conn.Connected() {
		return n.conn, nil
	}
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, common.WrapError(common.ErrNoSessionBus, err.Error())
	}
	n.conn = conn
	return conn, nil
}

// Close releases the bus connection.
func (n *DesktopNotifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.conn != nil {
		n.conn.Close()
		n.conn = nil
	}
}

func iconForUrgency(u common.Urgency) string {
	switch u {
	case common.UrgencyCritical:
		return "dialog-warning"
	default:
		return "utilities-system-monitor"
	}
}

// notifySend displays a notification using notify-send.
func notifySend(title, message string, urgency common.Urgency) error {
	level := "normal"
	switch urgency {
	case common.UrgencyCritical:
		level = "critical"
	case common.UrgencyLow:
		level = "low"
	}

	cmd := exec.Command("notify-send",
		"--app-name="+common.AppName,
		"--icon="+iconForUrgency(urgency),
		"--urgency="+level,
		title,
		message,
	)

	if err := cmd.Run(); err != nil {
		common.LogWarn("Error showing notification: %v", err)
		return err
	}
	return nil
}
