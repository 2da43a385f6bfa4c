package password

import (
	"strings"
	"testing"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	stored, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if !strings.Contains(stored, ":") {
		t.Fatalf("stored credential must be hash:salt, got %q", stored)
	}

	if !Verify("correct horse battery staple", stored) {
		t.Fatalf("verify must succeed for the original password")
	}

	if Verify("wrong password", stored) {
		t.Fatalf("verify must fail for a different password")
	}
}

func TestHashSaltsDiffer(t *testing.T) {
	a, err := Hash("same password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := Hash("same password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if a == b {
		t.Fatalf("two hashes of the same password must use different salts")
	}

	if !Verify("same password", a) || !Verify("same password", b) {
		t.Fatalf("both stored values must verify")
	}
}

func TestVerifyMalformedStored(t *testing.T) {
	tests := []struct {
		name   string
		stored string
	}{
		{name: "empty", stored: ""},
		{name: "no separator", stored: "deadbeef"},
		{name: "too many parts", stored: "aa:bb:cc"},
		{name: "non-hex hash", stored: "zzzz:deadbeef"},
		{name: "non-hex salt", stored: "deadbeef:zzzz"},
		{name: "empty hash", stored: ":deadbeef"},
		{name: "empty salt", stored: "deadbeef:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Verify("anything", tt.stored) {
				t.Fatalf("malformed stored value %q must verify false", tt.stored)
			}
		})
	}
}
