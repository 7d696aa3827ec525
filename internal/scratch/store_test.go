package scratch

import (
	"math/rand"
	"os"
	"runtime"
	"testing"

	"github.com/trusteetool/trustee/internal/draw"
)

func testAssignment(t *testing.T) draw.Assignment {
	t.Helper()
	a, err := draw.Derange([]string{"Ann", "Bob", "Cara"}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Derange returned error: %v", err)
	}
	return a
}

func TestWriteAndLoadRoundTrip(t *testing.T) {
	a := testAssignment(t)

	store, err := Write(a)
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	defer store.Remove()

	loaded, err := Load(store.Path())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	pairs := a.Pairs()
	if len(loaded) != len(pairs) {
		t.Fatalf("loaded %d pairs, want %d", len(loaded), len(pairs))
	}
	for giver, receiver := range pairs {
		if loaded[giver] != receiver {
			t.Errorf("loaded[%q] = %q, want %q", giver, loaded[giver], receiver)
		}
	}
}

func TestWriteRestrictsPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on Windows")
	}

	store, err := Write(testAssignment(t))
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	defer store.Remove()

	info, err := os.Stat(store.Path())
	if err != nil {
		t.Fatalf("Stat returned error: %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		t.Errorf("scratch file mode = %o, want 600", mode)
	}
}

func TestWriteRecordsSessionID(t *testing.T) {
	store, err := Write(testAssignment(t))
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	defer store.Remove()

	if store.SessionID() == "" {
		t.Error("SessionID() is empty")
	}
}

func TestRemoveDeletesFile(t *testing.T) {
	store, err := Write(testAssignment(t))
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	if err := store.Remove(); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Errorf("scratch file still exists after Remove: %v", err)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	store, err := Write(testAssignment(t))
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	if err := store.Remove(); err != nil {
		t.Fatalf("first Remove returned error: %v", err)
	}
	if err := store.Remove(); err != nil {
		t.Errorf("second Remove returned error: %v", err)
	}

	// Removing after the file vanished out-of-band is also fine.
	other, err := Write(testAssignment(t))
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	os.Remove(other.Path())
	if err := other.Remove(); err != nil {
		t.Errorf("Remove after external deletion returned error: %v", err)
	}
}

func TestRemoveOnNilStore(t *testing.T) {
	var store *Store
	if err := store.Remove(); err != nil {
		t.Errorf("Remove on nil store returned error: %v", err)
	}
}
