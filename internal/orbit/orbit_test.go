package orbit

import (
	"errors"
	"testing"
)

func TestNBodyIsReserved(t *testing.T) {
	var o Orbit = &NBody{}

	if _, _, _, err := o.PositionAt(1.0); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("PositionAt: expected ErrNotImplemented, got %v", err)
	}
	if _, _, _, err := o.VelocityAt(1.0); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("VelocityAt: expected ErrNotImplemented, got %v", err)
	}
}
