package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService("test-secret", 30)

	claims := &Claims{
		UserID: "user-1",
		Name:   "Alice",
		Email:  "alice@test.com",
		Role:   "CONCIERGE",
		Specialties: []SpecialtyClaim{
			{ID: "sp-1", Name: "Private Jets"},
		},
	}

	token, err := svc.GenerateToken(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := svc.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", parsed.UserID)
	assert.Equal(t, "alice@test.com", parsed.Email)
	assert.Equal(t, "CONCIERGE", parsed.Role)
	require.Len(t, parsed.Specialties, 1)
	assert.Equal(t, "Private Jets", parsed.Specialties[0].Name)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", 30)
	verifier := NewJWTService("secret-b", 30)

	token, err := issuer.GenerateToken(&Claims{UserID: "user-1"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	// Negative TTL puts the expiry in the past.
	svc := NewJWTService("test-secret", -1)

	token, err := svc.GenerateToken(&Claims{UserID: "user-1"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewJWTService("test-secret", 30)

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
