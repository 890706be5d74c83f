package raffletoken

import (
	"regexp"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

var (
	singleExp  = regexp.MustCompile(`^SD-\d{6}-[0-9A-Z]{4}$`)
	bundledExp = regexp.MustCompile(`^SD-\d{6}-[0-9A-Z]{4}-E\d{2}$`)
)

func TestGenerate_SingleTicketFormat(t *testing.T) {
	token := Generate(0)

	assert.Regexp(t, singleExp, token)
}

func TestGenerate_BundledTicketFormat(t *testing.T) {
	token := Generate(3)

	assert.Regexp(t, bundledExp, token)
	assert.Contains(t, token, "-E03")
}

func TestGenerate_TimestampFragment(t *testing.T) {
	restore := now
	defer func() { now = restore }()

	now = func() int64 { return 1712345678901 }

	token := Generate(0)

	// Last six digits of the millisecond clock.
	assert.Equal(t, "SD-678901", token[:9])
}

func TestGenerate_Properties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("bundled tokens always carry their entry suffix", prop.ForAll(
		func(entryIndex int) bool {
			token := Generate(entryIndex)

			return bundledExp.MatchString(token)
		},
		gen.IntRange(1, 60),
	))

	properties.Property("token length is constant per format", prop.ForAll(
		func(entryIndex int) bool {
			return len(Generate(entryIndex)) == len("SD-000000-XXXX-E00")
		},
		gen.IntRange(1, 99),
	))

	properties.TestingRun(t)
}
