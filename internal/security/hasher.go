package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// Hasher produces and checks password digests.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// BcryptHasher peppers the password with HMAC-SHA256 before bcrypt.
// The pre-hash also keeps inputs under bcrypt's 72 byte limit.
type BcryptHasher struct {
	pepper []byte
	cost   int
}

func NewBcryptHasher(pepper string, cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{pepper: []byte(pepper), cost: cost}
}

func (h *BcryptHasher) peppered(password string) []byte {
	mac := hmac.New(sha256.New, h.pepper)
	mac.Write([]byte(password))
	return []byte(hex.EncodeToString(mac.Sum(nil)))
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword(h.peppered(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h *BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), h.peppered(password)) == nil
}
