package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// low iteration count keeps the test fast
func newTestHasher(t *testing.T) *PasswordHasher {
	h, err := NewPasswordHasher(16, 1000, 32)
	require.NoError(t, err)
	return h
}

func TestNewPasswordHasher(t *testing.T) {
	tests := []struct {
		name       string
		saltLength int
		iterations int
		keyLength  int
		wantErr    bool
	}{
		{"valid parameters", 16, 210000, 32, false},
		{"minimum parameters", 8, 1000, 16, false},
		{"salt too short", 4, 210000, 32, true},
		{"iterations too low", 16, 100, 32, true},
		{"key too short", 16, 210000, 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPasswordHasher(tt.saltLength, tt.iterations, tt.keyLength)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPasswordHasher_RoundTrip(t *testing.T) {
	h := newTestHasher(t)

	salt, err := h.GenerateSalt()
	require.NoError(t, err)
	require.Len(t, salt, 16)

	hash := h.HashPassword("s3cret-password", salt)
	require.Len(t, hash, 32)

	assert.True(t, h.VerifyPassword("s3cret-password", hash, salt))
	assert.False(t, h.VerifyPassword("wrong-password", hash, salt))
	assert.False(t, h.VerifyPassword("", hash, salt))
}

func TestPasswordHasher_Deterministic(t *testing.T) {
	h := newTestHasher(t)
	salt := []byte("0123456789abcdef")

	first := h.HashPassword("s3cret-password", salt)
	second := h.HashPassword("s3cret-password", salt)
	assert.Equal(t, first, second)
}

func TestPasswordHasher_DistinctSalts(t *testing.T) {
	h := newTestHasher(t)

	a, err := h.GenerateSalt()
	require.NoError(t, err)
	b, err := h.GenerateSalt()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	// same password, different salt, different hash
	assert.NotEqual(t, h.HashPassword("s3cret-password", a), h.HashPassword("s3cret-password", b))
}

func TestPasswordHasher_VerifyCorruptHash(t *testing.T) {
	h := newTestHasher(t)
	salt := []byte("0123456789abcdef")
	hash := h.HashPassword("s3cret-password", salt)

	t.Run("truncated hash", func(t *testing.T) {
		assert.False(t, h.VerifyPassword("s3cret-password", hash[:16], salt))
	})

	t.Run("flipped byte", func(t *testing.T) {
		corrupt := make([]byte, len(hash))
		copy(corrupt, hash)
		corrupt[0] ^= 0xFF
		assert.False(t, h.VerifyPassword("s3cret-password", corrupt, salt))
	})

	t.Run("wrong salt", func(t *testing.T) {
		assert.False(t, h.VerifyPassword("s3cret-password", hash, []byte("fedcba9876543210")))
	})
}

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(32)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	other, err := GenerateToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)

	_, err = GenerateToken(0)
	assert.Error(t, err)
}

func TestEncodeDecode(t *testing.T) {
	h := newTestHasher(t)
	salt, err := h.GenerateSalt()
	require.NoError(t, err)

	encoded := EncodeToString(salt)
	decoded, err := DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, salt, decoded)

	_, err = DecodeString("not base64 !!!")
	assert.Error(t, err)
}
