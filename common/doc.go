// Package common holds the constants, sentinel errors, interfaces and
// logging shared by every other package of System Monitor.
//
//   - constants.go: application ids, file names, layout and timing defaults
//   - errors.go: sentinel errors, matched with errors.Is
//   - interfaces.go: Logger and Notifier abstractions
//   - logger.go: leveled logger with size-based rotation
//   - utils.go: config/data directory helpers and formatting
//
// # Usage
//
//	common.LogInfo("sampling every %s", interval)
//
//	if errors.Is(err, common.ErrPermissionDenied) {
//	    // the process belongs to another user
//	}
package common
