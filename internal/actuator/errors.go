package actuator

import "fmt"

// ActuatorError reports a failed or timed-out control command. It is
// surfaced synchronously to the caller and never auto-retried.
type ActuatorError struct {
	Command   string
	Container string
	Err       error
}

func NewActuatorError(command, container string, err error) *ActuatorError {
	return &ActuatorError{Command: command, Container: container, Err: err}
}

func (e *ActuatorError) Error() string {
	return fmt.Sprintf("actuator: %s %s: %v", e.Command, e.Container, e.Err)
}

func (e *ActuatorError) Unwrap() error {
	return e.Err
}
