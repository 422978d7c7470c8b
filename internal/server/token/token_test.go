package token

import (
	"strings"
	"testing"
	"time"
)

func newTestCodec() *Codec {
	return NewCodec([]byte("access-secret"), []byte("refresh-secret"), time.Minute, time.Hour)
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	c := newTestCodec()

	access, err := c.IssueAccess("u-1")
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}
	refresh, err := c.IssueRefresh("alice@example.com")
	if err != nil {
		t.Fatalf("IssueRefresh error: %v", err)
	}

	if !c.Verify(KindAccess, access) {
		t.Errorf("fresh access token must verify")
	}
	if !c.Verify(KindRefresh, refresh) {
		t.Errorf("fresh refresh token must verify")
	}
}

func TestVerify_KindsNotInterchangeable(t *testing.T) {
	c := newTestCodec()

	access, _ := c.IssueAccess("u-1")
	refresh, _ := c.IssueRefresh("alice@example.com")

	if c.Verify(KindRefresh, access) {
		t.Errorf("access token must not verify under refresh secret")
	}
	if c.Verify(KindAccess, refresh) {
		t.Errorf("refresh token must not verify under access secret")
	}
}

func TestVerify_Expired(t *testing.T) {
	c := newTestCodec()

	access, err := c.IssueAccess("u-1")
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}
	if !c.Verify(KindAccess, access) {
		t.Fatalf("token must verify before TTL elapses")
	}

	c.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if c.Verify(KindAccess, access) {
		t.Errorf("token must not verify after TTL elapses")
	}
}

func TestVerify_MalformedAndTampered(t *testing.T) {
	c := newTestCodec()

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if c.Verify(KindAccess, tok) {
			t.Errorf("malformed token %q must not verify", tok)
		}
	}

	other := NewCodec([]byte("another"), []byte("another"), time.Minute, time.Hour)
	forged, _ := other.IssueAccess("u-1")
	if c.Verify(KindAccess, forged) {
		t.Errorf("token signed with a different secret must not verify")
	}
}

func TestDecodeRefreshUnsafe(t *testing.T) {
	c := newTestCodec()

	refresh, err := c.IssueRefresh("alice@example.com")
	if err != nil {
		t.Fatalf("IssueRefresh error: %v", err)
	}

	claims, err := c.DecodeRefreshUnsafe(refresh)
	if err != nil {
		t.Fatalf("DecodeRefreshUnsafe error: %v", err)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("decoded email = %q, want %q", claims.Email, "alice@example.com")
	}

	// Decoding ignores the signature entirely: a token with a broken
	// signature still yields its payload. Authorization relies on Verify.
	parts := strings.Split(refresh, ".")
	broken := parts[0] + "." + parts[1] + ".AAAA"
	claims, err = c.DecodeRefreshUnsafe(broken)
	if err != nil {
		t.Fatalf("DecodeRefreshUnsafe on broken signature error: %v", err)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("decoded email = %q, want %q", claims.Email, "alice@example.com")
	}
	if c.Verify(KindRefresh, broken) {
		t.Errorf("token with broken signature must not verify")
	}
}
