package controller

import (
	"fmt"

	"github.com/yllada/system-monitor/common"
)

// Signaler sends the termination signal to a process.
type Signaler interface {
	Terminate(pid int) error
}

// KillTarget is the process waiting for confirmation, if any.
type KillTarget struct {
	PID   int
	Valid bool
}

// NoTarget is the empty KillTarget.
var NoTarget = KillTarget{}

// TargetPID returns a valid KillTarget for pid.
func TargetPID(pid int) KillTarget {
	return KillTarget{PID: pid, Valid: true}
}

// KillState is the state of the confirmation flow.
type KillState int

const (
	KillIdle KillState = iota
	KillAwaitingConfirmation
)

func (s KillState) String() string {
	switch s {
	case KillIdle:
		return "idle"
	case KillAwaitingConfirmation:
		return "awaiting-confirmation"
	default:
		return "unknown"
	}
}

// KillOutcome describes what Resolve did.
type KillOutcome struct {
	PID       int
	Attempted bool
	Err       error
}

// KillFlow tracks one pending termination request.
type KillFlow struct {
	signaler Signaler
	logger   common.Logger
	state    KillState
	target   KillTarget
}

// NewKillFlow creates an idle flow.
func NewKillFlow(signaler Signaler, logger common.Logger) *KillFlow {
	return &KillFlow{signaler: signaler, logger: logger}
}

// State returns the current state.
func (k *KillFlow) State() KillState { return k.state }

// Target returns the pending target.
func (k *KillFlow) Target() KillTarget { return k.target }

// Request records pid and waits for confirmation. A second request before
// the first is resolved replaces the pending pid.
func (k *KillFlow) Request(pid int) {
	k.target = TargetPID(pid)
	k.state = KillAwaitingConfirmation
}

// Resolve ends the flow. When confirmed with a recorded pid the process is
// signalled; a failure is logged and reported in the outcome only.
func (k *KillFlow) Resolve(confirmed bool) KillOutcome {
	target := k.target
	k.target = NoTarget
	k.state = KillIdle

	if !confirmed || !target.Valid {
		return KillOutcome{PID: target.PID}
	}

	out := KillOutcome{PID: target.PID, Attempted: true}
	if err := k.signaler.Terminate(target.PID); err != nil {
		out.Err = fmt.Errorf("%w: pid %d: %w", common.ErrKillFailed, target.PID, err)
		if k.logger != nil {
			k.logger.Warn("Kill failed for pid %d: %v", target.PID, err)
		}
		return out
	}
	if k.logger != nil {
		k.logger.Info("Sent termination signal to pid %d", target.PID)
	}
	return out
}
