package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roamly/auth-service/pkg/sanitizer"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"user@example.com", "user@example.com"},
		{"  User@Example.COM  ", "user@example.com"},
		{"\tMIXED@case.io\n", "mixed@case.io"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizer.NormalizeEmail(tt.in))
	}
}

func TestNormalizeUsername(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Traveler_42", sanitizer.NormalizeUsername("  Traveler_42  "))
	assert.Equal(t, "", sanitizer.NormalizeUsername("   "))
}
