package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	out, err := EncryptString("secret", "+15550001111")
	require.NoError(t, err)
	require.NotEqual(t, "+15550001111", out)

	plain, err := DecryptString("secret", out)
	require.NoError(t, err)
	require.Equal(t, "+15550001111", plain)
}

func TestDecryptWrongSecretFails(t *testing.T) {
	out, err := EncryptString("secret", "payload")
	require.NoError(t, err)

	_, err = DecryptString("other", out)
	require.Error(t, err)
}

func TestEncryptIsNondeterministic(t *testing.T) {
	a, err := EncryptString("secret", "payload")
	require.NoError(t, err)
	b, err := EncryptString("secret", "payload")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestGenerateOTPCodeFormat(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := GenerateOTPCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			require.True(t, r >= '0' && r <= '9')
		}
	}
}

func TestCodesEqual(t *testing.T) {
	require.True(t, CodesEqual("123456", "123456"))
	require.False(t, CodesEqual("123456", "123457"))
	require.False(t, CodesEqual("123456", "12345"))
}
