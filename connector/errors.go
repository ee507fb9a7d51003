package connector

import "fmt"

type Step string

const (
	StepConnect    Step = "connect"
	StepNewPage    Step = "new page"
	StepNavigate   Step = "navigate"
	StepTitle      Step = "read title"
	StepScreenshot Step = "screenshot"
	StepClose      Step = "close"
)

// StepError is returned by Session.Run for the step that failed.
type StepError struct {
	Step Step
	Err  error
}

func stepErr(step Step, err error) *StepError {
	return &StepError{Step: step, Err: err}
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
