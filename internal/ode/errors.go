package ode

import "errors"

// ErrInvalidState indicates a state vector containing NaN or Inf.
var ErrInvalidState = errors.New("ode: invalid state (NaN or Inf detected)")
