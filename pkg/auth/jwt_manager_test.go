package auth

import (
	"net/http"
	"testing"
	"time"
)

func TestHostTokenRoundTrip(t *testing.T) {
	mgr := NewHostTokenManager("testsecret", time.Hour)

	token, err := mgr.Generate("room-123")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	roomID, err := mgr.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if roomID != "room-123" {
		t.Errorf("got subject %q, want room-123", roomID)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewHostTokenManager("secret-a", time.Hour).Generate("room-123")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewHostTokenManager("secret-b", time.Hour).Verify(token); err == nil {
		t.Errorf("token signed with another secret must not verify")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	mgr := NewHostTokenManager("testsecret", -time.Minute)
	token, err := mgr.Generate("room-123")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := mgr.Verify(token); err == nil {
		t.Errorf("expired token must not verify")
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")

	token, err := ExtractTokenFromHeader(req)
	if err != nil || token != "abc.def.ghi" {
		t.Fatalf("got (%q, %v)", token, err)
	}

	req.Header.Set("Authorization", "abc.def.ghi")
	if _, err := ExtractTokenFromHeader(req); err == nil {
		t.Errorf("header without scheme must be rejected")
	}
}
