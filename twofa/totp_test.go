package twofa

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// base32 of the ASCII secret "12345678901234567890" used by RFC 4226 and RFC 6238
const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

func TestGenerateCodeRFC6238(T *testing.T) {
	args := []struct {
		Unix int64
		Code string
	}{
		{59, "287082"},
		{1111111109, "081804"},
		{1111111111, "050471"},
		{1234567890, "005924"},
		{2000000000, "279037"},
		{20000000000, "353130"},
	}

	for _, arg := range args {
		token, err := generateCode(rfcSecret, time.Unix(arg.Unix, 0))
		require.NoError(T, err)
		assert.Equal(T, arg.Code, token.Token, "unix %d", arg.Unix)
	}
}

func TestValidateWindow(T *testing.T) {
	// At t=59 the current counter is 1, the RFC 4226 codes of counters 0..4 are known
	now := time.Unix(59, 0)

	args := []struct {
		Token string
		Valid bool
	}{
		{Token: "287082", Valid: true},  // counter 1, current step
		{Token: "755224", Valid: true},  // counter 0, one step before
		{Token: "359152", Valid: true},  // counter 2, one step after
		{Token: "969429", Valid: false}, // counter 3
		{Token: "338314", Valid: false}, // counter 4, three steps away
		{Token: "000000", Valid: false},
		{Token: "12345", Valid: false},
		{Token: "1234567", Valid: false},
		{Token: "abcdef", Valid: false},
	}

	for _, arg := range args {
		valid, err := validate(rfcSecret, arg.Token, now)
		require.NoError(T, err)
		assert.Equal(T, arg.Valid, valid, "token %s", arg.Token)
	}
}

func TestValidateInvalidSecret(T *testing.T) {
	_, err := validate("not base32 !!", "123456", time.Unix(59, 0))
	assert.Error(T, err)
}

func TestRemaining(T *testing.T) {
	args := []struct {
		Unix      int64
		Remaining int
	}{
		{0, 30},
		{1, 29},
		{29, 1},
		{30, 30},
		{59, 1},
		{75, 15},
	}

	for _, arg := range args {
		assert.Equal(T, arg.Remaining, remaining(time.Unix(arg.Unix, 0)), "unix %d", arg.Unix)
	}
}

func TestGenerateKey(T *testing.T) {
	key, err := generateKey(DefaultIssuer, "Barefoot Nomad - user@case.com")
	require.NoError(T, err)

	assert.Len(T, key.Secret(), 32)
	assert.Equal(T, DefaultIssuer, key.Issuer())
	assert.True(T, strings.HasPrefix(key.URL(), "otpauth://totp/"))

	other, err := generateKey(DefaultIssuer, "Barefoot Nomad - user@case.com")
	require.NoError(T, err)
	assert.NotEqual(T, key.Secret(), other.Secret())

	image, err := dataURL(key)
	require.NoError(T, err)
	assert.True(T, strings.HasPrefix(image, "data:image/png;base64,"))
}
