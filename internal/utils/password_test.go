package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_VerificaIdaEVolta(t *testing.T) {
	hash, err := HashPassword("senha-super-secreta")
	require.NoError(t, err)
	assert.True(t, IsArgon2Hash(hash))

	ok, err := VerifyPassword("senha-super-secreta", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("senha-errada", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_SaltDiferentePorChamada(t *testing.T) {
	h1, err := HashPassword("mesma-senha")
	require.NoError(t, err)
	h2, err := HashPassword("mesma-senha")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestVerifyPassword_CompatBcrypt(t *testing.T) {
	// Contas criadas antes da migração para Argon2id
	legacy, err := bcrypt.GenerateFromPassword([]byte("senha-antiga"), bcrypt.MinCost)
	require.NoError(t, err)

	ok, err := VerifyPassword("senha-antiga", string(legacy))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("outra-senha", string(legacy))
	require.NoError(t, err)
	assert.False(t, ok)

	assert.False(t, IsArgon2Hash(string(legacy)))
}

func TestVerifyPassword_HashMalformado(t *testing.T) {
	_, err := VerifyPassword("qualquer", "nao-e-um-hash")
	assert.Error(t, err)
}
