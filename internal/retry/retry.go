// Package retry bounds how many times a user may give invalid input inside
// one guarded operation before that operation is abandoned.
package retry

import (
	"errors"
	"strconv"
	"strings"
)

// DefaultMaxAttempts is the attempt ceiling used when none is configured.
const DefaultMaxAttempts = 4

// Answers accepted by the try-again prompt.
const (
	ChoiceTryAgain = 1
	ChoiceCancel   = 2
)

// ErrCancelled is returned by a Run step to cancel the operation at the
// user's request. Run reports it as a Cancelled state, not as an error.
var ErrCancelled = errors.New("operation cancelled")

// State is where a guarded operation stands.
type State int

const (
	Attempting State = iota
	Succeeded
	Cancelled
)

func (s State) String() string {
	switch s {
	case Attempting:
		return "attempting"
	case Succeeded:
		return "succeeded"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Asker asks the user whether to try again and returns the raw answer.
type Asker interface {
	AskRetry() (string, error)
}

// AskerFunc adapts a function to the Asker interface.
type AskerFunc func() (string, error)

// AskRetry calls f.
func (f AskerFunc) AskRetry() (string, error) { return f() }

// Controller tracks attempts for one guarded operation. Create a new
// Controller for every operation; it is not reusable once terminal.
type Controller struct {
	max      int
	attempts int
	state    State
	asker    Asker
}

// New returns a Controller that cancels on the max-th failed attempt.
// A non-positive max falls back to DefaultMaxAttempts.
func New(max int, asker Asker) *Controller {
	if max <= 0 {
		max = DefaultMaxAttempts
	}
	return &Controller{max: max, asker: asker}
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Attempts returns the number of failed attempts recorded so far.
func (c *Controller) Attempts() int { return c.attempts }

// Remaining returns how many more failures are allowed before the
// controller cancels on its own.
func (c *Controller) Remaining() int { return c.max - c.attempts }

// Succeed marks the operation as successful.
func (c *Controller) Succeed() {
	if c.state == Attempting {
		c.state = Succeeded
	}
}

// Cancel marks the operation as cancelled by the user.
func (c *Controller) Cancel() {
	if c.state == Attempting {
		c.state = Cancelled
	}
}

// Fail records one invalid attempt. When the ceiling is reached the
// controller cancels without asking. Otherwise it asks until the answer is
// try-again or cancel; other answers are asked again and do not count as
// attempts. An error from the Asker cancels the operation and is returned.
func (c *Controller) Fail() (State, error) {
	if c.state != Attempting {
		return c.state, nil
	}
	c.attempts++
	if c.attempts >= c.max {
		c.state = Cancelled
		return c.state, nil
	}
	for {
		answer, err := c.asker.AskRetry()
		if err != nil {
			c.state = Cancelled
			return c.state, err
		}
		switch parseChoice(answer) {
		case ChoiceTryAgain:
			return c.state, nil
		case ChoiceCancel:
			c.state = Cancelled
			return c.state, nil
		}
	}
}

// Run calls step until it reports success or the controller cancels.
// A step error cancels immediately and is returned, except ErrCancelled
// which only cancels.
func (c *Controller) Run(step func() (ok bool, err error)) (State, error) {
	for c.state == Attempting {
		ok, err := step()
		if errors.Is(err, ErrCancelled) {
			c.state = Cancelled
			return c.state, nil
		}
		if err != nil {
			c.state = Cancelled
			return c.state, err
		}
		if ok {
			c.Succeed()
			break
		}
		if _, err := c.Fail(); err != nil {
			return c.state, err
		}
	}
	return c.state, nil
}

// parseChoice accepts only a whole integer after trimming spaces; "1x" is
// not a choice.
func parseChoice(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
