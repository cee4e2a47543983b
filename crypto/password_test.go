package crypto

import (
	"strings"
	"testing"
)

func TestGenerateHashAndCheckPassword(t *testing.T) {
	hash, err := GenerateHash("Abcd123!")
	if err != nil {
		t.Fatalf("GenerateHash failed: %v", err)
	}

	if strings.Contains(hash, "Abcd123!") {
		t.Error("hash must not contain the plaintext password")
	}
	if !CheckPassword("Abcd123!", hash) {
		t.Error("correct password must verify")
	}
	if CheckPassword("Abcd123?", hash) {
		t.Error("wrong password must not verify")
	}
	if CheckPassword("Abcd123!", "not-a-bcrypt-hash") {
		t.Error("garbage hash must not verify")
	}
}

func TestGenerateHashSalted(t *testing.T) {
	a, err := GenerateHash("Abcd123!")
	if err != nil {
		t.Fatalf("GenerateHash failed: %v", err)
	}
	b, err := GenerateHash("Abcd123!")
	if err != nil {
		t.Fatalf("GenerateHash failed: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same password must differ")
	}
}
