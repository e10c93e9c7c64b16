package password

import "testing"

func TestHasher_RoundTrip(t *testing.T) {
	h := NewHasher()

	hash, err := h.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatalf("hash equals plaintext")
	}

	if !h.Check("s3cret-pass", hash) {
		t.Fatalf("expected check to succeed")
	}
	if h.Check("wrong-pass", hash) {
		t.Fatalf("expected check to fail for wrong password")
	}
}

func TestHasher_DistinctHashes(t *testing.T) {
	h := NewHasher()

	a, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Fatalf("expected salted hashes to differ")
	}
}
