package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/almacen-api/pkg/jwt"
)

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	tok, err := pkgjwt.Generate("secreto", "user-1", "employee", "almacen-test", 5)
	require.NoError(t, err)

	userID, role, err := pkgjwt.Parse("secreto", tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "employee", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate("secreto", "user-1", "admin", "almacen-test", 5)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secreto", tok)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate("secreto", "user-1", "admin", "almacen-test", -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("secreto", tok)
	assert.Error(t, err)
}

func TestGenerate_SinSecreto(t *testing.T) {
	_, err := pkgjwt.Generate("", "user-1", "admin", "almacen-test", 5)
	assert.Error(t, err)
}
