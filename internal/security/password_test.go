package security

import (
	"strings"
	"testing"
)

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret" {
		t.Fatalf("hash must not equal the plain password")
	}
	if !strings.HasPrefix(hash, "$2a$") && !strings.HasPrefix(hash, "$2b$") {
		t.Fatalf("unexpected hash format %q", hash)
	}
	if !CheckPassword("s3cret", hash) {
		t.Fatalf("correct password rejected")
	}
	if CheckPassword("wrong", hash) {
		t.Fatalf("wrong password accepted")
	}
}

func TestCheckPasswordWithGarbageHash(t *testing.T) {
	if CheckPassword("anything", "not-a-bcrypt-hash") {
		t.Fatalf("garbage hash accepted")
	}
}
