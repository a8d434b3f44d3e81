package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multimovil/pos-api/pkg/jwt"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := jwt.Generate("secreto", "user-1", "cajero", "pos-api", 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, role, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "cajero", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secreto", "user-1", "admin", "pos-api", 60)
	require.NoError(t, err)

	_, _, err = jwt.Parse("otro-secreto", token)
	require.Error(t, err, "un token firmado con otro secret no debe validar")
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "user-1", "admin", "pos-api", 60)
	require.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate("secreto", "user-1", "admin", "pos-api", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse("secreto", token)
	require.Error(t, err, "un token vencido no debe validar")
}
