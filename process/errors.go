package process

import "errors"

var (
	// ErrProcessNotFound is returned by an attach attempt when no process
	// matches the requested name. The caller owns the retry cadence.
	ErrProcessNotFound = errors.New("process not found")

	// ErrProcessNotOpen is returned when an operation requiring an open process is attempted
	// before the process has been successfully opened or after it has been closed.
	ErrProcessNotOpen = errors.New("process not open")

	// ErrProcessExited is returned when a read fails because the target
	// process is gone. The handle is dead; attach again, never repair.
	ErrProcessExited = errors.New("process exited")

	// ErrAddressNotMapped is returned when a memory address is not found within any mapped region of a process.
	// During game startup this is routine and means "no value yet", not a failure.
	ErrAddressNotMapped = errors.New("address not mapped")

	ErrInvalidPointer = errors.New("invalid pointer read")
)

// Transient reports whether a read error means the value is merely absent
// this tick, as opposed to the whole session being dead.
func Transient(err error) bool {
	return errors.Is(err, ErrAddressNotMapped) || errors.Is(err, ErrInvalidPointer)
}
