package resp

import (
	"errors"
	"fmt"

	"github.com/xy-planning-network/courier"
)

var (
	ErrFinalized = errors.New("response already finalized")
	ErrNoStore   = fmt.Errorf("%w: no files.Store configured", courier.ErrBadConfig)
	ErrNotValid  = courier.ErrNotValid
)
