package roster

import (
	"errors"
	"testing"

	terrors "github.com/trusteetool/trustee/internal/errors"
)

func TestParseNames(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"simple list", "Ann,Bob,Cara", []string{"Ann", "Bob", "Cara"}},
		{"whitespace trimmed", "  Ann , Bob ,Cara  ", []string{"Ann", "Bob", "Cara"}},
		{"empty segments dropped", "Ann,,Bob,", []string{"Ann", "Bob"}},
		{"blank input", "   ", nil},
		{"duplicates preserved for New to handle", "Ann,Ann", []string{"Ann", "Ann"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseNames(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseNames(%q) = %v, want %v", tt.raw, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("ParseNames(%q)[%d] = %q, want %q", tt.raw, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNewDeduplicatesExactOnly(t *testing.T) {
	// "Alex" and "alex" differ only by case and are both kept; the
	// second exact "Alex" is dropped.
	r, err := New([]string{"Alex", "alex", "Alex", "Bob"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	want := []string{"Alex", "alex", "Bob"}
	names := r.Names()
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestNewRequiresTwoDistinctNames(t *testing.T) {
	tests := []struct {
		name  string
		names []string
	}{
		{"empty", nil},
		{"single", []string{"Ann"}},
		{"duplicates collapse to one", []string{"Ann", "Ann", " Ann "}},
		{"only blanks", []string{"", "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.names)
			if !errors.Is(err, terrors.ErrTooFewParticipants) {
				t.Errorf("New(%v) error = %v, want ErrTooFewParticipants", tt.names, err)
			}
		})
	}
}

func TestResolveSingleCandidate(t *testing.T) {
	r, err := New([]string{"Ann", "Bob", "Cara"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	for _, query := range []string{"bob", "BOB", "Bob", "bOb"} {
		p, err := r.Resolve(query)
		if err != nil {
			t.Errorf("Resolve(%q) returned error: %v", query, err)
			continue
		}
		if p.Name != "Bob" {
			t.Errorf("Resolve(%q) = %q, want Bob", query, p.Name)
		}
	}
}

func TestResolveNotFound(t *testing.T) {
	r, err := New([]string{"Ann", "Bob"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = r.Resolve("Mallory")
	if !errors.Is(err, terrors.ErrParticipantNotFound) {
		t.Errorf("Resolve error = %v, want ErrParticipantNotFound", err)
	}
}

func TestResolveCaseVariants(t *testing.T) {
	r, err := New([]string{"Alex", "alex", "Bob"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	// Exact-case query resolves directly without ambiguity.
	p, err := r.Resolve("alex")
	if err != nil {
		t.Fatalf("Resolve(\"alex\") returned error: %v", err)
	}
	if p.Name != "alex" {
		t.Errorf("Resolve(\"alex\") = %q, want \"alex\"", p.Name)
	}

	p, err = r.Resolve("Alex")
	if err != nil {
		t.Fatalf("Resolve(\"Alex\") returned error: %v", err)
	}
	if p.Name != "Alex" {
		t.Errorf("Resolve(\"Alex\") = %q, want \"Alex\"", p.Name)
	}

	// A query matching neither casing exactly is ambiguous.
	_, err = r.Resolve("ALEX")
	if !errors.Is(err, terrors.ErrAmbiguousName) {
		t.Errorf("Resolve(\"ALEX\") error = %v, want ErrAmbiguousName", err)
	}

	// Candidates come back in enrollment order.
	candidates := r.Candidates("ALEX")
	if len(candidates) != 2 {
		t.Fatalf("Candidates(\"ALEX\") returned %d entries, want 2", len(candidates))
	}
	if candidates[0].Name != "Alex" || candidates[1].Name != "alex" {
		t.Errorf("Candidates order = [%q, %q], want [\"Alex\", \"alex\"]",
			candidates[0].Name, candidates[1].Name)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	r, err := New([]string{"Alex", "alex", "Bob"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	// Repeated lookups of the same query return the same outcome; no
	// hidden state mutates on resolution.
	for i := 0; i < 5; i++ {
		if _, err := r.Resolve("ALEX"); !errors.Is(err, terrors.ErrAmbiguousName) {
			t.Fatalf("call %d: Resolve(\"ALEX\") error = %v, want ErrAmbiguousName", i, err)
		}
		p, err := r.Resolve("bob")
		if err != nil || p.Name != "Bob" {
			t.Fatalf("call %d: Resolve(\"bob\") = (%q, %v), want (Bob, nil)", i, p.Name, err)
		}
	}
}

func TestEnrollmentPositions(t *testing.T) {
	r, err := New([]string{"Cara", "Ann", "Bob"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	for i, p := range r.Participants() {
		if p.Pos != i {
			t.Errorf("participant %q has Pos %d, want %d", p.Name, p.Pos, i)
		}
	}
}
