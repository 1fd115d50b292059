package crypto

import "testing"

func TestHashPassword_NeverEqualsPlaintext(t *testing.T) {
	hash, err := HashPassword("longpassword")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "longpassword" {
		t.Fatal("hash must not equal the plaintext password")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	h1, err := HashPassword("longpassword")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("longpassword")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password must differ (per-call salt)")
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if !VerifyPassword("correct horse battery", hash) {
		t.Error("expected matching password to verify")
	}
	if VerifyPassword("wrong password", hash) {
		t.Error("expected mismatched password to fail verification")
	}
	if VerifyPassword("correct horse battery", "not-a-hash") {
		t.Error("expected malformed hash to fail verification")
	}
}
