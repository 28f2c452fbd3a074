package roomcode

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// Alphabet deliberately drops 0/O and 1/I so codes survive being read aloud.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const CodeLength = 6

// Generate returns a 6-character room code. Uniqueness is not guaranteed
// here; the store layer retries against its unique index on collision.
func Generate() string {
	var b strings.Builder
	b.Grow(CodeLength)
	max := big.NewInt(int64(len(Alphabet)))
	for i := 0; i < CodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the platform is broken
			panic(err)
		}
		b.WriteByte(Alphabet[n.Int64()])
	}
	return b.String()
}

// Normalize maps user-typed codes onto the stored form.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NewID produces an opaque identifier for client-scoped entities the store
// never assigns ids to: draft questions composed before room creation and
// device session tokens. Draft ids are discarded once the store assigns real
// ones.
func NewID() string {
	return uuid.NewString()
}
