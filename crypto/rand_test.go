package crypto

import (
	"strings"
	"testing"
)

func TestRandomString(t *testing.T) {
	s := RandomString(16, AlphanumericAlphabet)
	if len(s) != 16 {
		t.Errorf("length = %d, want 16", len(s))
	}
	for _, r := range s {
		if !strings.ContainsRune(AlphanumericAlphabet, r) {
			t.Errorf("character %q not in alphabet", r)
		}
	}
	if RandomString(16, AlphanumericAlphabet) == s {
		t.Error("two random strings must differ")
	}
}

func TestNewResetTicket(t *testing.T) {
	ticket := NewResetTicket()
	if len(ticket) != ResetTicketLength*2 {
		t.Errorf("length = %d, want %d hex chars", len(ticket), ResetTicketLength*2)
	}
	if ticket == NewResetTicket() {
		t.Error("two tickets must differ")
	}
}
