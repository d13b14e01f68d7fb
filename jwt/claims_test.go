package jwt

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewID(t *testing.T) {
	id := NewID()

	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("not a valid identifier: %q: %v", id, err)
	}

	if NewID() == id {
		t.Error("expected distinct identifiers")
	}
}

func TestNewID_asGrant(t *testing.T) {
	tok := New()

	if err := tok.AddGrant(ClaimID, NewID()); err != nil {
		t.Fatal(err)
	}

	if _, err := tok.Grant(ClaimID); err != nil {
		t.Error(err)
	}
}
