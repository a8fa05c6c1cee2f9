package resp

import (
	"fmt"

	"github.com/xy-planning-network/courier"
)

var (
	_ courier.Enumerable = Open
	_ courier.Enumerable = Pending
)

// A State is where a Response is in its lifecycle.
// A Response moves from Open to Finalized exactly once.
type State int

const (
	Open State = iota
	Finalized
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Finalized:
		return "finalized"
	default:
		return "unknown"
	}
}

func (s State) Valid() error {
	switch s {
	case Open, Finalized:
		return nil
	default:
		return fmt.Errorf("%w: state %d", courier.ErrNotValid, int(s))
	}
}

// An Outcome reports what finalizing a Response did.
type Outcome int

const (
	// Pending means nothing was transmitted; the Response is still Open.
	Pending Outcome = iota

	// Sent means the Response was handed to the Transport without error.
	Sent

	// Skipped means the Response was already Finalized, so nothing was transmitted.
	Skipped

	// Dropped means the Transport failed while transmitting, e.g., the peer went away.
	Dropped
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Sent:
		return "sent"
	case Skipped:
		return "skipped"
	case Dropped:
		return "dropped"
	default:
		return "unknown"
	}
}

func (o Outcome) Valid() error {
	switch o {
	case Pending, Sent, Skipped, Dropped:
		return nil
	default:
		return fmt.Errorf("%w: outcome %d", courier.ErrNotValid, int(o))
	}
}
