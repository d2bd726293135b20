package panel

import (
	"errors"
	"net/http"
)

// State is the lifecycle of one panel: Idle until a run starts, Loading
// while a request is in flight, then Success or Error. A new run from
// Success or Error goes back through Loading.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// ErrRunInFlight is returned when Run is called while a previous run is
// still loading. ErrNoInput is returned when Run is called before a valid
// input was selected; neither transition the panel out of its state.
var (
	ErrRunInFlight = errors.New("a run is already in flight")
	ErrNoInput     = errors.New("no valid input selected")
)

// fsm is the shared state machine embedded in every controller. A failed
// run records its message but deliberately keeps the previous successful
// payload around; controllers only overwrite results on success.
type fsm struct {
	state      State
	errMessage string
}

func (f *fsm) State() State { return f.state }

// ErrorMessage is the user-facing message of the last failed run, empty
// otherwise.
func (f *fsm) ErrorMessage() string { return f.errMessage }

func (f *fsm) begin() error {
	if f.state == StateLoading {
		return ErrRunInFlight
	}
	f.state = StateLoading
	f.errMessage = ""
	return nil
}

func (f *fsm) succeed() {
	f.state = StateSuccess
}

func (f *fsm) fail(message string) {
	f.state = StateError
	f.errMessage = message
}

// userMessage converts a transport or API failure into something worth
// showing. Quota exhaustion gets the actionable variant so users know the
// other skills still work.
func userMessage(err error, quotaMessage string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusPaymentRequired {
			return quotaMessage
		}
		return apiErr.Message
	}
	return "Please try again."
}
