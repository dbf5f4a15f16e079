// Package twofa manages the TOTP based two factor authentication of the users
package twofa

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/VinukaThejana/go-utils/logger"
	"github.com/VinukaThejana/nomad/templates"
)

// DefaultIssuer is the issuer embedded in the provisioning URI
const DefaultIssuer = "Barefoot Nomad"

// Setup is the type specific projection returned after setting up a secret
type Setup struct {
	Type        Type    `json:"twoFAType"`
	Secret      *string `json:"twoFASecret"`
	PhoneNumber *string `json:"phoneNumber"`
	DataURL     *string `json:"twoFADataURL"`
}

// MarshalJSON only carries the phone number of the SMS text family and the
// provisioning image of the authenticator family, null values included
func (s Setup) MarshalJSON() ([]byte, error) {
	res := map[string]interface{}{
		"twoFAType":   s.Type,
		"twoFASecret": s.Secret,
	}
	switch {
	case s.Type.IsSMS():
		res["phoneNumber"] = s.PhoneNumber
	case s.Type.IsApp():
		res["twoFADataURL"] = s.DataURL
	}

	return json.Marshal(res)
}

// Config is the current two factor configuration of a user
type Config struct {
	Type        Type    `json:"twoFAType"`
	Secret      *string `json:"twoFASecret"`
	DataURL     *string `json:"twoFADataURL"`
	PhoneNumber *string `json:"phoneNumber"`
}

// Reset is the configuration written when two factor authentication is disabled
type Reset struct {
	Type    Type    `json:"twoFAType"`
	Secret  *string `json:"twoFASecret"`
	DataURL *string `json:"twoFADataURL"`
}

// VerifyInput contains the details needed to verify a token
type VerifyInput struct {
	Email  string
	Type   Type
	Secret string
	Token  string
}

// TokenData is the token and the message that were dispatched
type TokenData struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Dispatch is returned after sending a token through SMS text
type Dispatch struct {
	Type        Type      `json:"twoFAType"`
	Secret      string    `json:"twoFASecret"`
	PhoneNumber string    `json:"phoneNumber"`
	TokenData   TokenData `json:"tokenData"`
}

// Options configure the Manager
type Options struct {
	// Issuer defaults to DefaultIssuer
	Issuer string
	// Locker serializes SetupSecret, Verify and Disable per email when set
	Locker Locker
	// RequirePhoneBeforeSetup rejects SMS text setups of users without a phone
	// number before anything is persisted. When false the secret is persisted
	// first and the caller decides what to report.
	RequirePhoneBeforeSetup bool
	// ConfirmOnValidTokenOnly confirms a pending type only after the token is
	// found valid. When false the pending type is confirmed before the token
	// is checked, even if the token turns out to be wrong.
	ConfirmOnValidTokenOnly bool
	// Now defaults to time.Now
	Now func() time.Time
}

// Manager owns the lifecycle of the two factor configuration of the users
type Manager struct {
	directory UserDirectory
	notifier  Notifier
	opts      Options
}

// New creates a Manager
func New(directory UserDirectory, notifier Notifier, opts Options) *Manager {
	if opts.Issuer == "" {
		opts.Issuer = DefaultIssuer
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Manager{
		directory: directory,
		notifier:  notifier,
		opts:      opts,
	}
}

func (m *Manager) lock(ctx context.Context, email string) (func(), error) {
	if m.opts.Locker == nil {
		return func() {}, nil
	}

	return m.opts.Locker.Lock(ctx, "twofa:"+email)
}

// SetupSecret generates a fresh secret for the user and persists it with the requested type
func (m *Manager) SetupSecret(ctx context.Context, email string, requested Type) (*Setup, error) {
	if !requested.valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, requested.String())
	}

	unlock, err := m.lock(ctx, email)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if m.opts.RequirePhoneBeforeSetup && requested.IsSMS() {
		account, err := m.directory.Account(ctx, email)
		if err != nil {
			return nil, err
		}
		if isEmpty(account.PhoneNumber) {
			return nil, ErrPhoneNumberRequired
		}
	}

	key, err := generateKey(m.opts.Issuer, fmt.Sprintf("%s - %s", m.opts.Issuer, email))
	if err != nil {
		return nil, fmt.Errorf("generate totp secret: %w", err)
	}
	image, err := dataURL(key)
	if err != nil {
		return nil, fmt.Errorf("render provisioning image: %w", err)
	}

	secret := key.Secret()
	stored := Setup{Type: requested, Secret: &secret, DataURL: &image}
	if requested.IsNone() {
		stored = Setup{Type: None}
	}

	// The write happens even when an SMS text user has no phone number
	err = m.directory.SaveTwoFactor(ctx, email, stored.Type, stored.Secret, stored.DataURL)
	if err != nil {
		return nil, err
	}

	account, err := m.directory.Account(ctx, email)
	if err != nil {
		return nil, err
	}

	switch {
	case requested.IsSMS():
		return &Setup{Type: requested, Secret: &secret, PhoneNumber: account.PhoneNumber}, nil
	case requested.IsApp():
		return &Setup{Type: requested, Secret: &secret, DataURL: &image}, nil
	default:
		return &Setup{Type: None}, nil
	}
}

// Status returns the current two factor configuration of the user
func (m *Manager) Status(ctx context.Context, email string) (*Config, error) {
	account, err := m.directory.Account(ctx, email)
	if err != nil {
		return nil, err
	}

	return &Config{
		Type:        account.Type,
		Secret:      account.Secret,
		DataURL:     account.DataURL,
		PhoneNumber: account.PhoneNumber,
	}, nil
}

// Disable resets the two factor configuration of the user
func (m *Manager) Disable(ctx context.Context, email string) (*Reset, error) {
	unlock, err := m.lock(ctx, email)
	if err != nil {
		return nil, err
	}
	defer unlock()

	reset := Reset{Type: None.Reset()}
	err = m.directory.SaveTwoFactor(ctx, email, reset.Type, reset.Secret, reset.DataURL)
	if err != nil {
		return nil, err
	}

	return &reset, nil
}

// Verify checks the token against the secret. A wrong token is not an error.
// A pending type is only confirmed while the stored type and secret still match the input,
// ErrConfigChanged is returned when they were changed in between.
func (m *Manager) Verify(ctx context.Context, in VerifyInput) (bool, error) {
	if in.Type.IsNone() {
		return false, ErrNotEnabled
	}

	unlock, err := m.lock(ctx, in.Email)
	if err != nil {
		return false, err
	}
	defer unlock()

	if in.Type.Pending && !m.opts.ConfirmOnValidTokenOnly {
		// TODO: confirmation before the token check locks in the enrollment
		// on a wrong token, switch the default once product signs off
		if err := m.directory.ConfirmTwoFactorType(ctx, in.Email, in.Type, in.Secret); err != nil {
			return false, err
		}
	}

	valid, err := validate(in.Secret, in.Token, m.opts.Now())
	if err != nil {
		return false, err
	}

	if valid && in.Type.Pending && m.opts.ConfirmOnValidTokenOnly {
		if err := m.directory.ConfirmTwoFactorType(ctx, in.Email, in.Type, in.Secret); err != nil {
			return false, err
		}
	}

	return valid, nil
}

// GenerateToken computes the token of the current time step
func (m *Manager) GenerateToken(secret string) (*Token, error) {
	token, err := generateCode(secret, m.opts.Now())
	if err != nil {
		return nil, fmt.Errorf("generate totp token: %w", err)
	}

	return token, nil
}

// DispatchSMSToken sends the current token to the phone number, nothing is persisted
func (m *Manager) DispatchSMSToken(ctx context.Context, secret, phoneNumber string) (*Dispatch, error) {
	token, err := m.GenerateToken(secret)
	if err != nil {
		return nil, err
	}

	message, err := templates.SMS{}.TokenTmpl(token.Token)
	if err != nil {
		return nil, err
	}

	if err := m.notifier.Send(ctx, phoneNumber, message); err != nil {
		return nil, fmt.Errorf("send sms token: %w", err)
	}
	logger.Log(fmt.Sprintf("[ %s ] : TOTP token sent", phoneNumber))

	return &Dispatch{
		Type:        SMSText,
		Secret:      secret,
		PhoneNumber: phoneNumber,
		TokenData: TokenData{
			Token:   token.Token,
			Message: message,
		},
	}, nil
}

func isEmpty(s *string) bool {
	return s == nil || *s == ""
}
