package token

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testCodec() *Codec {
	return NewCodec("test-secret", 7*24*time.Hour, 15*time.Minute)
}

func TestCodec_SessionRoundTrip(t *testing.T) {
	c := testCodec()
	id := uuid.New()

	tok, err := c.IssueSession(id, "ann@x.com", "Ann")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := c.Verify(tok)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Subject != id.String() {
		t.Fatalf("want subject %s got %s", id, claims.Subject)
	}
	if claims.Email != "ann@x.com" || claims.Name != "Ann" {
		t.Fatalf("claims mutated: %+v", claims)
	}
	if claims.Purpose != PurposeSession {
		t.Fatalf("want purpose session got %s", claims.Purpose)
	}
}

func TestCodec_DistinctTokensPerIssue(t *testing.T) {
	c := testCodec()
	id := uuid.New()

	// same subject, same second: the jti still makes each issuance unique
	t1, err := c.IssueSession(id, "ann@x.com", "Ann")
	if err != nil {
		t.Fatal(err)
	}
	t2, err := c.IssueSession(id, "ann@x.com", "Ann")
	if err != nil {
		t.Fatal(err)
	}
	if t1 == t2 {
		t.Fatal("two issuances must produce distinct tokens")
	}

	c1, err := c.Verify(t1)
	if err != nil {
		t.Fatal(err)
	}
	c2, err := c.Verify(t2)
	if err != nil {
		t.Fatal(err)
	}
	if c1.Subject != c2.Subject {
		t.Fatalf("subjects diverged: %s vs %s", c1.Subject, c2.Subject)
	}
	if c1.ID == "" || c1.ID == c2.ID {
		t.Fatalf("jti must be fresh per issuance: %q vs %q", c1.ID, c2.ID)
	}
}

func TestCodec_ResetClaims(t *testing.T) {
	c := testCodec()
	tok, err := c.IssueReset(uuid.New(), "ann@x.com")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := c.Verify(tok)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Purpose != PurposeReset || claims.Name != "" {
		t.Fatalf("unexpected reset claims: %+v", claims)
	}
}

func TestCodec_Expired(t *testing.T) {
	c := NewCodec("test-secret", -time.Second, -time.Second)
	tok, err := c.IssueSession(uuid.New(), "e@e", "n")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Verify(tok); err == nil {
		t.Fatal("expected expired token to be invalid")
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	tok, _ := testCodec().IssueSession(uuid.New(), "e@e", "n")
	other := NewCodec("other-secret", time.Minute, time.Minute)
	if _, err := other.Verify(tok); err == nil {
		t.Fatal("expected signature mismatch")
	}
}

func TestCodec_TamperedSignature(t *testing.T) {
	c := testCodec()
	tok, _ := c.IssueSession(uuid.New(), "e@e", "n")

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", tok)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := c.Verify(tampered); err == nil {
		t.Fatal("expected tampered signature to be invalid")
	}
}

func TestCodec_Malformed(t *testing.T) {
	c := testCodec()
	for _, raw := range []string{"", "bad", "a.b.c"} {
		if _, err := c.Verify(raw); err == nil {
			t.Fatalf("expected %q to be invalid", raw)
		}
	}
}
