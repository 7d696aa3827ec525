package backup

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"

	"github.com/trusteetool/trustee/internal/draw"
	terrors "github.com/trusteetool/trustee/internal/errors"
)

// Artifact layout: salt (16) ‖ nonce (24) ‖ secretbox ciphertext.
const (
	saltSize  = 16
	nonceSize = 24

	scryptN = 32768
	scryptR = 8
	scryptP = 1
)

// Artifact is an opaque reference to a sealed backup on disk.
type Artifact struct {
	Path string
}

// Seal writes a password-sealed copy of the assignment listing into dir
// and returns the artifact reference. The secret is the full numeric
// password whose shares are handed out during reveals; combining every
// share in order reconstructs it.
func Seal(dir string, a draw.Assignment, secret string) (Artifact, error) {
	if secret == "" {
		return Artifact{}, fmt.Errorf("%w: empty secret", terrors.ErrBackupFailed)
	}

	listing := FormatListing(a)

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return Artifact{}, fmt.Errorf("%w: failed to generate salt: %v", terrors.ErrBackupFailed, err)
	}

	key, err := deriveKey(secret, salt)
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: %v", terrors.ErrBackupFailed, err)
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return Artifact{}, fmt.Errorf("%w: failed to generate nonce: %v", terrors.ErrBackupFailed, err)
	}

	out := make([]byte, 0, saltSize+nonceSize+len(listing)+secretbox.Overhead)
	out = append(out, salt...)
	out = append(out, nonce[:]...)
	out = secretbox.Seal(out, listing, &nonce, key)

	name := fmt.Sprintf("santa_backup_%s.sealed", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, out, 0600); err != nil {
		return Artifact{}, fmt.Errorf("%w: failed to write artifact: %v", terrors.ErrBackupFailed, err)
	}

	return Artifact{Path: path}, nil
}

// Open decrypts a sealed backup artifact with the combined secret and
// returns the plaintext assignment listing.
func Open(path string, secret string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	if len(data) < saltSize+nonceSize+secretbox.Overhead {
		return nil, terrors.ErrInvalidArtifact
	}

	salt := data[:saltSize]
	var nonce [nonceSize]byte
	copy(nonce[:], data[saltSize:saltSize+nonceSize])

	key, err := deriveKey(secret, salt)
	if err != nil {
		return nil, err
	}

	listing, ok := secretbox.Open(nil, data[saltSize+nonceSize:], &nonce, key)
	if !ok {
		return nil, terrors.ErrSealOpenFailed
	}
	return listing, nil
}

// FormatListing renders the assignment as the plaintext stored inside
// the artifact, sorted by giver for stable output.
func FormatListing(a draw.Assignment) []byte {
	givers := a.Givers()
	sort.Strings(givers)

	var b strings.Builder
	b.WriteString("Secret Santa Assignments\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	for _, giver := range givers {
		receiver, _ := a.Receiver(giver)
		fmt.Fprintf(&b, "%s -> %s\n", giver, receiver)
	}
	return []byte(b.String())
}

func deriveKey(secret string, salt []byte) (*[32]byte, error) {
	raw, err := scrypt.Key([]byte(secret), salt, scryptN, scryptR, scryptP, 32)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	var key [32]byte
	copy(key[:], raw)
	return &key, nil
}
