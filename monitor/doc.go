// Package monitor samples processes and system status for System Monitor.
//
// Manager builds per-process snapshots (CPU, memory, disk and network
// rates) on top of gopsutil and filters them by the process tabs: GUI
// applications, the current user's processes, or everything. Sampler polls
// aggregate system status on an interval and reports each Status through a
// callback. Terminator sends the termination signal used by the kill flow.
package monitor
