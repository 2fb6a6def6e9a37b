package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/issue-tracker/internal/auth"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := auth.HashPassword("Password1", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "Password1", hash)

	require.NoError(t, auth.ComparePassword(hash, "Password1"))
	require.Error(t, auth.ComparePassword(hash, "password1"))
	require.Error(t, auth.ComparePassword(hash, ""))
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := auth.HashPassword("Password1", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := auth.HashPassword("Password1", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestStrongPassword(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"Password1", true},
		{"aVeryLongPassword9", true},
		{"Ab1aaaaa", true},
		{"password1", false}, // no uppercase
		{"PASSWORD1", false}, // no lowercase
		{"Passwords", false}, // no digit
		{"Pass1", false},     // too short
		{"", false},
		{"Pässwörd1", true}, // unicode letters still count
	}
	for _, tc := range cases {
		t.Run(tc.password, func(t *testing.T) {
			require.Equal(t, tc.want, auth.StrongPassword(tc.password))
		})
	}
}
