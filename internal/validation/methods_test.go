package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"strong password", "Str0ng!pass", true},
		{"too short", "S!ort", false},
		{"no special character", "LongEnough123", false},
		{"at the length cap", strings.Repeat("a", 71) + "!", true},
		{"over the length cap", strings.Repeat("a", 72) + "!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Password("password", tt.password)
			assert.Equal(t, tt.valid, v.Valid())
		})
	}
}

func TestEmailAndPhone(t *testing.T) {
	v := New()
	v.Email("email", "user@example.com")
	v.Phone("phone", "+12025550100")
	assert.True(t, v.Valid())

	v = New()
	v.Email("email", "not-an-email")
	v.Phone("phone", "abc")
	assert.False(t, v.Valid())
	assert.Len(t, v.Errors, 2)
}

func TestFirstReportsViolationsInOrder(t *testing.T) {
	v := New()
	v.Required("name", "")
	v.Email("email", "nope")

	assert.Equal(t, "name must not be empty", v.First())
}

func TestFirstEmptyWhenValid(t *testing.T) {
	v := New()
	v.Required("name", "Amina")
	assert.Equal(t, "", v.First())
}
