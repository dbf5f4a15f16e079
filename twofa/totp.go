package twofa

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	// Period is the length of a single time step in seconds
	Period = 30
	// Skew is the number of time steps accepted before and after the current one
	Skew = 1
	// SecretSize is the number of random bytes in a shared secret
	SecretSize = 20

	qrSize = 200
)

var validateOpts = totp.ValidateOpts{
	Period:    Period,
	Skew:      Skew,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// Token is a one time token minted for out of band delivery
type Token struct {
	Token     string `json:"token"`
	Remaining int    `json:"remaining"`
}

func generateKey(issuer, accountName string) (*otp.Key, error) {
	return totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: accountName,
		Period:      Period,
		SecretSize:  SecretSize,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
}

// dataURL renders the provisioning URI of the key as a PNG QR code data URL
func dataURL(key *otp.Key) (string, error) {
	img, err := key.Image(qrSize, qrSize)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// generateCode computes the code of the time step that contains now, no skew
func generateCode(secret string, now time.Time) (*Token, error) {
	code, err := totp.GenerateCodeCustom(secret, now.UTC(), validateOpts)
	if err != nil {
		return nil, err
	}

	return &Token{
		Token:     code,
		Remaining: remaining(now),
	}, nil
}

// remaining is the number of seconds left until the current step ends
func remaining(now time.Time) int {
	return Period - int(now.Unix()%Period)
}

// validate checks the token against the steps in [now-Skew, now+Skew]
func validate(secret, token string, now time.Time) (bool, error) {
	valid, err := totp.ValidateCustom(token, secret, now.UTC(), validateOpts)
	if err != nil {
		if errors.Is(err, otp.ErrValidateInputInvalidLength) {
			return false, nil
		}
		return false, fmt.Errorf("validate totp token: %w", err)
	}

	return valid, nil
}
