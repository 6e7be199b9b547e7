package monitor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"syscall"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/yllada/system-monitor/common"
)

// Terminator sends SIGTERM through gopsutil.
type Terminator struct{}

// Terminate asks process pid to exit.
func (Terminator) Terminate(pid int) error {
	if err := checkPID(pid); err != nil {
		return err
	}

	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return fmt.Errorf("%w: %d", common.ErrProcessNotFound, pid)
	}

	if err := p.Terminate(); err != nil {
		return classifySignalError(pid, err)
	}
	return nil
}

// ProcessName returns the executable name of pid.
func ProcessName(ctx context.Context, pid int) (string, error) {
	if err := checkPID(pid); err != nil {
		return "", err
	}
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return "", fmt.Errorf("%w: %d", common.ErrProcessNotFound, pid)
	}
	name, err := p.NameWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %d", common.ErrProcessNotFound, pid)
	}
	return name, nil
}

// checkPID rejects pids the kernel cannot hold. gopsutil takes an int32, so
// anything larger would wrap onto another process.
func checkPID(pid int) error {
	if pid <= 0 || pid > math.MaxInt32 {
		return fmt.Errorf("%w: %d", common.ErrInvalidPID, pid)
	}
	return nil
}

func classifySignalError(pid int, err error) error {
	switch {
	case errors.Is(err, syscall.EPERM), errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: pid %d", common.ErrPermissionDenied, pid)
	case errors.Is(err, syscall.ESRCH), errors.Is(err, os.ErrProcessDone):
		return fmt.Errorf("%w: pid %d", common.ErrProcessNotFound, pid)
	default:
		return common.WrapError(err, fmt.Sprintf("pid %d", pid))
	}
}
