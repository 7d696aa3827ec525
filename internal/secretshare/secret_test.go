package secretshare

import (
	"errors"
	"strings"
	"testing"

	terrors "github.com/trusteetool/trustee/internal/errors"
)

func TestGenerateLengthAndCharset(t *testing.T) {
	for _, n := range []int{1, 2, 3, 10} {
		secret, err := Generate(n)
		if err != nil {
			t.Fatalf("Generate(%d) returned error: %v", n, err)
		}
		if len(secret) != DigitsPerShare*n {
			t.Errorf("Generate(%d) length = %d, want %d", n, len(secret), DigitsPerShare*n)
		}
		for i, c := range secret {
			if c < '0' || c > '9' {
				t.Errorf("Generate(%d) produced non-digit %q at position %d", n, c, i)
			}
		}
	}
}

func TestGenerateRejectsNonPositiveCount(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, err := Generate(n); err == nil {
			t.Errorf("Generate(%d) should return an error", n)
		}
	}
}

func TestSplitKnownSecret(t *testing.T) {
	shares, err := Split("482917364520", 3)
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}

	want := []string{"4829", "1736", "4520"}
	if len(shares) != len(want) {
		t.Fatalf("got %d shares, want %d", len(shares), len(want))
	}
	for i := range want {
		if shares[i] != want[i] {
			t.Errorf("share[%d] = %q, want %q", i, shares[i], want[i])
		}
	}
}

func TestSplitRoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7} {
		secret, err := Generate(n)
		if err != nil {
			t.Fatalf("Generate(%d) returned error: %v", n, err)
		}
		shares, err := Split(secret, n)
		if err != nil {
			t.Fatalf("Split returned error: %v", err)
		}
		if len(shares) != n {
			t.Errorf("got %d shares, want %d", len(shares), n)
		}
		if joined := strings.Join(shares, ""); joined != secret {
			t.Errorf("concatenated shares = %q, want %q", joined, secret)
		}
	}
}

func TestSplitRefusesUnevenLength(t *testing.T) {
	_, err := Split("12345", 2)
	if !errors.Is(err, terrors.ErrUnevenSplit) {
		t.Errorf("Split error = %v, want ErrUnevenSplit", err)
	}
}

func TestSplitRejectsNonPositiveCount(t *testing.T) {
	if _, err := Split("1234", 0); err == nil {
		t.Error("Split with zero shares should return an error")
	}
}

func TestGenerateIsNotConstant(t *testing.T) {
	// Two 40-digit secrets colliding by chance is a 10^-40 event, so a
	// collision here means the random source is broken.
	a, err := Generate(10)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	b, err := Generate(10)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if a == b {
		t.Error("two generated secrets were identical")
	}
}
