package draw

import (
	"math/rand"
	"time"

	terrors "github.com/trusteetool/trustee/internal/errors"
)

// maxAttempts bounds the shuffle-and-reject loop. Acceptance probability
// converges to ~1/e, so the bound is never reached in practice; hitting
// it means the RNG is broken.
const maxAttempts = 10000

// Assignment is a fixed-point-free bijection from givers to receivers
// over the same participant set. It is read-only after creation.
type Assignment struct {
	givers    []string
	receivers map[string]string
}

// Derange pairs every giver with a receiver so that nobody is assigned
// to themselves, by repeatedly shuffling the receiver order and
// accepting the first shuffle with no fixed point. Every rejected
// shuffle is discarded, so accepted derangements are uniform over all
// derangements of the set.
func Derange(names []string, rng *rand.Rand) (Assignment, error) {
	if len(names) < 2 {
		return Assignment{}, terrors.ErrTooFewParticipants
	}

	givers := make([]string, len(names))
	copy(givers, names)
	receivers := make([]string, len(names))
	copy(receivers, names)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		rng.Shuffle(len(receivers), func(i, j int) {
			receivers[i], receivers[j] = receivers[j], receivers[i]
		})

		if hasFixedPoint(givers, receivers) {
			continue
		}

		mapping := make(map[string]string, len(givers))
		for i, giver := range givers {
			mapping[giver] = receivers[i]
		}
		return Assignment{givers: givers, receivers: mapping}, nil
	}

	return Assignment{}, terrors.ErrDerangeFailed
}

// NewRand returns the RNG used for shuffling. A non-nil seed makes the
// draw reproducible; otherwise the source is seeded from the clock.
// This RNG deliberately does not need to be cryptographically secure —
// the sealed backup secret comes from a separate CSPRNG.
func NewRand(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Givers returns the giver names in enrollment order.
func (a Assignment) Givers() []string {
	out := make([]string, len(a.givers))
	copy(out, a.givers)
	return out
}

// Receiver returns the receiver assigned to the given giver.
func (a Assignment) Receiver(giver string) (string, bool) {
	r, ok := a.receivers[giver]
	return r, ok
}

// Pairs returns a copy of the giver→receiver mapping for serialization.
func (a Assignment) Pairs() map[string]string {
	out := make(map[string]string, len(a.receivers))
	for g, r := range a.receivers {
		out[g] = r
	}
	return out
}

// Len returns the number of participants in the assignment.
func (a Assignment) Len() int {
	return len(a.givers)
}

func hasFixedPoint(givers, receivers []string) bool {
	for i := range givers {
		if givers[i] == receivers[i] {
			return true
		}
	}
	return false
}
