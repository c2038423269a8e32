package network

import (
	"testing"

	"github.com/automoto/airhockey-mp/shared/statevec"
)

func TestSessionStartsAsSpectator(t *testing.T) {
	s := NewSession()
	if s.Role() != RoleSpectator {
		t.Errorf("expected spectator, got %s", s.Role())
	}
	if s.CanDriveInput() {
		t.Error("spectator must not drive input")
	}
	if _, ok := s.Owned(); ok {
		t.Error("spectator owns no paddle")
	}
}

func TestSessionAssignIsOneShot(t *testing.T) {
	s := NewSession()
	if !s.Assign("p2") {
		t.Fatal("first assignment should be accepted")
	}
	if s.Assign("p1") {
		t.Error("second assignment should be ignored")
	}
	if s.Assign("p2") {
		t.Error("duplicate assignment should be ignored")
	}
	if s.Role() != RolePaddle2 {
		t.Errorf("expected p2, got %s", s.Role())
	}
	if p, ok := s.Owned(); !ok || p != statevec.Paddle2 {
		t.Errorf("expected to own paddle 2, got %v %v", p, ok)
	}
	if !s.CanDriveInput() {
		t.Error("owner should drive input")
	}
}

func TestSessionIgnoresUnknownDesignator(t *testing.T) {
	s := NewSession()
	for _, d := range []string{"", "p3", "P1", "spectator"} {
		if s.Assign(d) {
			t.Errorf("designator %q should be ignored", d)
		}
	}
	if s.Role() != RoleSpectator {
		t.Errorf("role changed to %s", s.Role())
	}
	if !s.Assign("p1") {
		t.Error("valid assignment after garbage should still be accepted")
	}
}

func TestSessionInactiveStopsInput(t *testing.T) {
	s := NewSession()
	s.Assign("p1")
	if !s.MarkInactive() {
		t.Fatal("first MarkInactive should report true")
	}
	if s.MarkInactive() {
		t.Error("second MarkInactive should report false")
	}
	if s.CanDriveInput() {
		t.Error("inactive session must not drive input")
	}
	if s.Role() != RolePaddle1 {
		t.Errorf("inactivity should keep the role, got %s", s.Role())
	}
}
