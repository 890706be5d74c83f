package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"letters and digits", "secret123", false},
		{"digit first", "1strongpass", false},
		{"too short", "abc1", true},
		{"letters only", "onlyletters", true},
		{"digits only", "1234567890", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.password)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTooWeak)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
