package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestEncryptDecryptRoundTrip(t *testing.T) {
	encrypted, err := Encrypt([]byte("EAABsbCS1i..."), testKey)
	require.NoError(t, err)
	assert.NotEqual(t, "EAABsbCS1i...", encrypted)

	decrypted, err := Decrypt(encrypted, testKey)
	require.NoError(t, err)
	assert.Equal(t, "EAABsbCS1i...", decrypted)
}

func TestEncryptProducesFreshNonce(t *testing.T) {
	a, err := Encrypt([]byte("same token"), testKey)
	require.NoError(t, err)
	b, err := Encrypt([]byte("same token"), testKey)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDecryptWrongKeyFails(t *testing.T) {
	encrypted, err := Encrypt([]byte("secret"), testKey)
	require.NoError(t, err)

	otherKey := []byte("fedcba9876543210fedcba9876543210")
	_, err = Decrypt(encrypted, otherKey)
	assert.Error(t, err)
}

func TestDecryptGarbageFails(t *testing.T) {
	_, err := Decrypt("bm90IHJlYWwgY2lwaGVydGV4dA==", testKey)
	assert.Error(t, err)
}
