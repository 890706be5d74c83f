// Package raffletoken produces the human-readable ticket identifiers
// printed on raffle entries, e.g. SD-482913-K7Q2 or SD-482913-K7Q2-E03
// for the third ticket of a bundled purchase.
//
// Uniqueness is best effort: the timestamp fragment plus four random
// base-36 characters make collisions rare, not impossible. Callers must
// check the generated token against the entry ledger and regenerate on
// collision; the ledger's unique index is the authoritative guard.
package raffletoken

import (
	"fmt"
	"math/rand"
	"strings"
)

const (
	// Prefix identifies tokens issued by this system.
	Prefix = "SD"

	randomLen = 4
	charset   = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// now is swapped out in tests.
var now = unixMilli

// Generate returns a fresh token. entryIndex > 0 appends a zero-padded
// suffix distinguishing tickets within one purchase; pass 0 for a
// single-ticket format without the suffix.
func Generate(entryIndex int) string {
	timestamp := now() % 1_000_000

	if entryIndex > 0 {
		return fmt.Sprintf("%s-%06d-%s-E%02d", Prefix, timestamp, randomFragment(), entryIndex)
	}

	return fmt.Sprintf("%s-%06d-%s", Prefix, timestamp, randomFragment())
}

func randomFragment() string {
	var b strings.Builder
	b.Grow(randomLen)
	for i := 0; i < randomLen; i++ {
		b.WriteByte(charset[rand.Intn(len(charset))])
	}

	return b.String()
}
