package roster

import (
	"strings"

	terrors "github.com/trusteetool/trustee/internal/errors"
)

// Participant is an enrolled display name with its enrollment position.
// Names are case-preserving: "Alex" and "alex" are distinct participants.
type Participant struct {
	Name string
	Pos  int // 0-based enrollment index
}

// Roster is the immutable participant set plus a case-insensitive
// identity index built once at enrollment. Lookups never mutate it.
type Roster struct {
	participants []Participant
	index        map[string][]Participant
}

// ParseNames splits a comma-separated enrollment line into trimmed,
// non-empty names. Duplicates survive here; New de-duplicates.
func ParseNames(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// New enrolls the given names: trims whitespace, drops empties,
// de-duplicates by exact string equality keeping first occurrence, and
// requires at least 2 distinct participants.
func New(names []string) (*Roster, error) {
	seen := make(map[string]bool)
	var participants []Participant
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		participants = append(participants, Participant{Name: name, Pos: len(participants)})
	}

	if len(participants) < 2 {
		return nil, terrors.ErrTooFewParticipants
	}

	index := make(map[string][]Participant)
	for _, p := range participants {
		key := strings.ToLower(p.Name)
		index[key] = append(index[key], p)
	}

	return &Roster{participants: participants, index: index}, nil
}

// Resolve maps a free-text query to exactly one participant.
//
// The query is lower-cased for lookup. A single candidate resolves
// directly. Among case-variant collisions, a raw query that exactly
// matches one candidate's original casing wins; otherwise the caller
// must disambiguate via Candidates.
func (r *Roster) Resolve(query string) (Participant, error) {
	candidates, ok := r.index[strings.ToLower(query)]
	if !ok {
		return Participant{}, terrors.ErrParticipantNotFound
	}

	for _, p := range candidates {
		if p.Name == query {
			return p, nil
		}
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	return Participant{}, terrors.ErrAmbiguousName
}

// Candidates returns, in enrollment order, every participant whose
// lower-cased name matches the query. Empty when none match.
func (r *Roster) Candidates(query string) []Participant {
	candidates := r.index[strings.ToLower(query)]
	out := make([]Participant, len(candidates))
	copy(out, candidates)
	return out
}

// Participants returns the enrolled participants in enrollment order.
func (r *Roster) Participants() []Participant {
	out := make([]Participant, len(r.participants))
	copy(out, r.participants)
	return out
}

// Names returns the enrolled display names in enrollment order.
func (r *Roster) Names() []string {
	names := make([]string, len(r.participants))
	for i, p := range r.participants {
		names[i] = p.Name
	}
	return names
}

// Len returns the number of enrolled participants.
func (r *Roster) Len() int {
	return len(r.participants)
}
