package waitlistclient

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/postie/waitlist/pkg/constants"
)

type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateConfirmed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

var (
	ErrEmptyEmail     = errors.New("email is empty")
	ErrNotInteractive = errors.New("form is not accepting input")
)

type Joiner interface {
	Join(ctx context.Context, email string) (*JoinResponse, error)
}

type Alerter interface {
	Alert(message string)
}

type AlerterFunc func(message string)

func (f AlerterFunc) Alert(message string) {
	f(message)
}

type timer interface {
	Stop() bool
}

type scheduler func(d time.Duration, fn func()) timer

func realScheduler(d time.Duration, fn func()) timer {
	return time.AfterFunc(d, fn)
}

// Form holds the signup form state. Only Idle accepts edits and submissions.
// After a successful join the form is Confirmed for the confirmation window and
// then returns to Idle on its own.
type Form struct {
	mu sync.Mutex

	joiner   Joiner
	alerter  Alerter
	window   time.Duration
	schedule scheduler

	email        string
	state        State
	confirmation string
	revert       timer
}

type FormOption func(*Form)

func WithConfirmationWindow(d time.Duration) FormOption {
	return func(f *Form) {
		if d > 0 {
			f.window = d
		}
	}
}

func NewForm(joiner Joiner, alerter Alerter, opts ...FormOption) *Form {
	f := &Form{
		joiner:   joiner,
		alerter:  alerter,
		window:   constants.WaitlistConfirmationWindow,
		schedule: realScheduler,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SetEmail binds the input value. Ignored unless the form is Idle.
func (f *Form) SetEmail(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateIdle {
		return
	}
	f.email = value
}

func (f *Form) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Form) Interactive() bool {
	return f.State() == StateIdle
}

// Confirmation is the server's message while the form is Confirmed.
func (f *Form) Confirmation() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateConfirmed {
		return ""
	}
	return f.confirmation
}

// Submit trims the bound email and sends it. ErrEmptyEmail and ErrNotInteractive
// return without a request or a state change. A failed join alerts and returns
// the form to Idle with the input kept.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state != StateIdle {
		f.mu.Unlock()
		return ErrNotInteractive
	}
	email := strings.TrimSpace(f.email)
	if email == "" {
		f.mu.Unlock()
		return ErrEmptyEmail
	}
	f.state = StateSubmitting
	f.mu.Unlock()

	resp, err := f.joiner.Join(ctx, email)
	if err != nil {
		if f.alerter != nil {
			f.alerter.Alert(UserMessage(err))
		}

		f.mu.Lock()
		f.state = StateIdle
		f.mu.Unlock()
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.email = ""
	f.state = StateConfirmed
	f.confirmation = constants.WaitlistJoinedMessage
	if resp != nil && resp.Message != "" {
		f.confirmation = resp.Message
	}
	f.revert = f.schedule(f.window, f.revertToIdle)
	return nil
}

func (f *Form) revertToIdle() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateConfirmed {
		f.state = StateIdle
		f.confirmation = ""
	}
	f.revert = nil
}

// Close cancels a pending revert. The form stays in its current state.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.revert != nil {
		f.revert.Stop()
		f.revert = nil
	}
}
