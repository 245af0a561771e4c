package game

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"slices"
)

// KeySize is the secret key length in bytes (256 bits).
const KeySize = 32

// Commitment binds a move to a digest computed with a one-time secret key.
// The digest can be shown right away; the key only after the player has
// chosen.
type Commitment struct {
	digest string
	move   string
	key    []byte
}

// Committer produces commitments from a secure entropy source.
type Committer struct {
	entropy io.Reader
}

// NewCommitter returns a Committer reading keys from entropy. A nil reader
// means crypto/rand.
func NewCommitter(entropy io.Reader) *Committer {
	if entropy == nil {
		entropy = rand.Reader
	}
	return &Committer{entropy: entropy}
}

// Commit draws a fresh key and binds move to it.
func (c *Committer) Commit(move string) (*Commitment, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(c.entropy, key); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	return &Commitment{
		digest: hex.EncodeToString(sign(key, move)),
		move:   move,
		key:    key,
	}, nil
}

// Digest returns the lowercase hex HMAC-SHA256 of the move.
func (c *Commitment) Digest() string {
	return c.digest
}

// Move returns the committed move.
func (c *Commitment) Move() string {
	return c.move
}

// Key returns a copy of the secret key.
func (c *Commitment) Key() []byte {
	return slices.Clone(c.key)
}

// Reveal discloses the key as lowercase hex together with the move.
func (c *Commitment) Reveal() (string, string) {
	return hex.EncodeToString(c.key), c.move
}

// Verify recomputes the digest for key and move and compares it with the
// committed one.
func (c *Commitment) Verify(key []byte, move string) bool {
	want, err := hex.DecodeString(c.digest)
	if err != nil {
		return false
	}
	return hmac.Equal(sign(key, move), want)
}

// VerifyHex checks a disclosed round: it reports whether digestHex is the
// HMAC-SHA256 of move under keyHex. Malformed hex is an error, a mismatch is
// not.
func VerifyHex(digestHex, keyHex, move string) (bool, error) {
	want, err := hex.DecodeString(digestHex)
	if err != nil {
		return false, fmt.Errorf("decode hmac: %w", err)
	}
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return false, fmt.Errorf("decode key: %w", err)
	}
	return hmac.Equal(sign(key, move), want), nil
}

func sign(key []byte, move string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(move))
	return mac.Sum(nil)
}
