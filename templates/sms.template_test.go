package templates_test

import (
	"testing"

	"github.com/VinukaThejana/nomad/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenTmpl(T *testing.T) {
	args := []struct {
		Token   string
		Message string
	}{
		{Token: "123456", Message: "Your 6 Digit 60 seconds expiration PassCode is: 123456"},
		{Token: "000001", Message: "Your 6 Digit 60 seconds expiration PassCode is: 000001"},
	}

	for _, arg := range args {
		message, err := templates.SMS{}.TokenTmpl(arg.Token)
		require.NoError(T, err)
		assert.Equal(T, arg.Message, message)
	}
}
