package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyPasswordHashBcrypt(t *testing.T) {
	hashed, err := HashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hashed)

	matched, needsRehash, err := VerifyPasswordHash(hashed, "secret")
	require.NoError(t, err)
	assert.True(t, matched)
	assert.False(t, needsRehash)

	matched, _, err = VerifyPasswordHash(hashed, "wrong")
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestVerifyPasswordHashWerkzeug(t *testing.T) {
	tests := []struct {
		name     string
		hash     string
		password string
		matched  bool
	}{
		{
			name:     "pbkdf2 with iterations",
			hash:     "pbkdf2:sha256:1000$NaCl1234$c63d55068de333b03174c8f309b826b67b39da28b35d02973de339c53ac7f5ed",
			password: "secret",
			matched:  true,
		},
		{
			name:     "pbkdf2 default iterations",
			hash:     "pbkdf2:sha256$NaCl1234$b736b5760b142633ee810f271bd2aaefc13206b3a64bdefbffc6fa416e3c3f61",
			password: "secret",
			matched:  true,
		},
		{
			name:     "scrypt",
			hash:     "scrypt:1024:8:1$Salt5678$9f0c007a36d2dcc0b2995ef4771d39634dea8a267180e887677e53aad32c4bbb6c46f596ecdccaab6110192532880657f342de442cd48bf50f67e25adc7caadb",
			password: "secret",
			matched:  true,
		},
		{
			name:     "pbkdf2 wrong password",
			hash:     "pbkdf2:sha256:1000$NaCl1234$c63d55068de333b03174c8f309b826b67b39da28b35d02973de339c53ac7f5ed",
			password: "Secret",
			matched:  false,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			matched, needsRehash, err := VerifyPasswordHash(testCase.hash, testCase.password)
			require.NoError(t, err)
			assert.Equal(t, testCase.matched, matched)
			assert.Equal(t, testCase.matched, needsRehash)
		})
	}
}

func TestVerifyPasswordHashRejectsUnknownFormats(t *testing.T) {
	for _, stored := range []string{"", "plain", "pbkdf2:md5:10$salt$abcd", "pbkdf2:sha256:x$salt$abcd", "scrypt:1:2$salt$abcd"} {
		_, _, err := VerifyPasswordHash(stored, "secret")
		assert.ErrorIs(t, err, ErrUnsupportedPasswordHash, stored)
	}
}
