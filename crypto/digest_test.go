package crypto

import "testing"

func TestTokenDigest(t *testing.T) {
	digest := TokenDigest("some-refresh-token")

	if len(digest) != 64 {
		t.Errorf("digest length = %d, want 64 hex chars", len(digest))
	}
	if digest == "some-refresh-token" {
		t.Error("digest must not equal the raw token")
	}
	if digest != TokenDigest("some-refresh-token") {
		t.Error("digest must be deterministic")
	}
	if digest == TokenDigest("some-refresh-tokeN") {
		t.Error("distinct tokens must produce distinct digests")
	}
}

func TestDigestEqual(t *testing.T) {
	a := TokenDigest("token-a")
	b := TokenDigest("token-b")

	if !DigestEqual(a, a) {
		t.Error("equal digests must compare equal")
	}
	if DigestEqual(a, b) {
		t.Error("distinct digests must not compare equal")
	}
	if DigestEqual(a, a[:32]) {
		t.Error("digests of different length must not compare equal")
	}
}
