// Package password holds the admin password strength rule.
package password

import (
	"errors"

	"github.com/dlclark/regexp2"
)

// The lookaheads need regexp2; the stdlib engine rejects them.
const strengthPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`

var ErrTooWeak = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")

var strengthExp = regexp2.MustCompile(strengthPattern, regexp2.None)

// Validate rejects passwords that fall below the strength rule.
func Validate(password string) error {
	ok, err := strengthExp.MatchString(password)
	if err != nil || !ok {
		return ErrTooWeak
	}

	return nil
}
