package common

import "errors"

// Sentinel errors. Check them with errors.Is.
var (
	// Process errors.
	ErrInvalidPID       = errors.New("invalid process id")
	ErrProcessNotFound  = errors.New("process not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrKillFailed       = errors.New("failed to terminate process")

	// Preference errors.
	ErrUnknownOption = errors.New("unknown option")
	ErrInvalidOption = errors.New("invalid option value")
	ErrConfigLoad    = errors.New("failed to load configuration")
	ErrConfigSave    = errors.New("failed to save configuration")

	// Sampling and storage errors.
	ErrHistoryUnavailable = errors.New("history store unavailable")
	ErrNoSessionBus       = errors.New("session bus unavailable")
	ErrSamplerRunning     = errors.New("sampler already running")
)

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
