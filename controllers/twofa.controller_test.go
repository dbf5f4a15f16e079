package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/VinukaThejana/nomad/controllers"
	"github.com/VinukaThejana/nomad/schemas"
	"github.com/VinukaThejana/nomad/twofa"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

type directory struct {
	mu       sync.Mutex
	accounts map[string]*twofa.Account
}

func (d *directory) Account(_ context.Context, email string) (*twofa.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	account, ok := d.accounts[email]
	if !ok {
		return nil, twofa.ErrUserNotFound
	}
	copied := *account
	return &copied, nil
}

func (d *directory) SaveTwoFactor(_ context.Context, email string, t twofa.Type, secret, dataURL *string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	account, ok := d.accounts[email]
	if !ok {
		return twofa.ErrUserNotFound
	}
	account.Type, account.Secret, account.DataURL = t, secret, dataURL
	return nil
}

func (d *directory) ConfirmTwoFactorType(_ context.Context, email string, pending twofa.Type, secret string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	account, ok := d.accounts[email]
	if !ok || account.Type != pending || account.Secret == nil || *account.Secret != secret {
		return twofa.ErrConfigChanged
	}
	account.Type = pending.Confirm()
	return nil
}

func (d *directory) get(email string) twofa.Account {
	d.mu.Lock()
	defer d.mu.Unlock()
	return *d.accounts[email]
}

type notifier struct {
	phoneNumbers []string
	messages     []string
}

func (n *notifier) Send(_ context.Context, phoneNumber, message string) error {
	n.phoneNumbers = append(n.phoneNumbers, phoneNumber)
	n.messages = append(n.messages, message)
	return nil
}

func strPtr(s string) *string {
	return &s
}

func newApp(d *directory, n *notifier, email string) *fiber.App {
	manager := twofa.New(d, n, twofa.Options{
		Now: func() time.Time { return time.Unix(59, 0) },
	})
	twoFAC := controllers.TwoFA{
		Manager: manager,
	}
	adminC := controllers.Admin{
		Manager: manager,
	}

	app := fiber.New()
	app.Delete("/admin/users/2fa", adminC.DisableTwoFactor)
	app.Use(func(c *fiber.Ctx) error {
		if email != "" {
			c.Locals("email", email)
		}
		return c.Next()
	})
	app.Patch("/2fa/totp/setup", twoFAC.Setup)
	app.Get("/2fa/totp/setup", twoFAC.Status)
	app.Patch("/2fa/totp/disable", twoFAC.Disable)
	app.Post("/2fa/totp/verify", twoFAC.Verify)
	app.Post("/2fa/totp/send-token-text", twoFAC.SendTokenText)
	return app
}

func call(T *testing.T, app *fiber.App, method, path string, body interface{}) (int, schemas.Res) {
	T.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(T, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	require.NoError(T, err)
	defer res.Body.Close()

	var payload schemas.Res
	require.NoError(T, json.NewDecoder(res.Body).Decode(&payload))
	return res.StatusCode, payload
}

func data(T *testing.T, res schemas.Res) map[string]interface{} {
	T.Helper()
	m, ok := res.Data.(map[string]interface{})
	require.True(T, ok, "response carries no data")
	return m
}

func TestSetup(T *testing.T) {
	args := []struct {
		name        string
		phoneNumber *string
		twoFAType   string
		status      int
		message     string
		stored      twofa.Type
	}{
		{
			name:        "authenticator app",
			phoneNumber: nil,
			twoFAType:   "authenticator_app_temp",
			status:      http.StatusOK,
			message:     "TOTP Secret created",
			stored:      twofa.AuthenticatorAppTemp,
		},
		{
			name:        "sms text with a phone number",
			phoneNumber: strPtr("+250788000000"),
			twoFAType:   "sms_text_temp",
			status:      http.StatusOK,
			message:     "TOTP Secret created",
			stored:      twofa.SMSTextTemp,
		},
		{
			name:        "sms text without a phone number is still persisted",
			phoneNumber: nil,
			twoFAType:   "sms_text_temp",
			status:      http.StatusBadRequest,
			message:     "You need to set a phoneNumber to activate 2FA with SMS.",
			stored:      twofa.SMSTextTemp,
		},
		{
			name:        "none",
			phoneNumber: nil,
			twoFAType:   "none",
			status:      http.StatusOK,
			message:     "TOTP Secret created",
			stored:      twofa.None,
		},
		{
			name:        "confirmed types are rejected",
			phoneNumber: nil,
			twoFAType:   "sms_text",
			status:      http.StatusBadRequest,
			message:     "Invalid 2FA type",
			stored:      twofa.None,
		},
	}

	for _, arg := range args {
		T.Run(arg.name, func(T *testing.T) {
			d := &directory{accounts: map[string]*twofa.Account{
				"jane@example.com": {Email: "jane@example.com", Type: twofa.None, PhoneNumber: arg.phoneNumber},
			}}
			app := newApp(d, &notifier{}, "jane@example.com")

			status, res := call(T, app, http.MethodPatch, "/2fa/totp/setup", fiber.Map{"twoFAType": arg.twoFAType})
			assert.Equal(T, arg.status, status)
			assert.Equal(T, arg.message, res.Message)
			assert.Equal(T, arg.stored, d.get("jane@example.com").Type)

			if arg.status == http.StatusOK && arg.stored != twofa.None {
				m := data(T, res)
				assert.Equal(T, arg.twoFAType, m["twoFAType"])
				assert.NotEmpty(T, m["twoFASecret"])
				if arg.stored.IsApp() {
					assert.True(T, strings.HasPrefix(m["twoFADataURL"].(string), "data:image/png;base64,"))
				} else {
					assert.Equal(T, *arg.phoneNumber, m["phoneNumber"])
				}
			}
		})
	}
}

func TestSetupRequiresSession(T *testing.T) {
	d := &directory{accounts: map[string]*twofa.Account{}}
	app := newApp(d, &notifier{}, "")

	status, res := call(T, app, http.MethodPatch, "/2fa/totp/setup", fiber.Map{"twoFAType": "none"})
	assert.Equal(T, http.StatusUnauthorized, status)
	assert.Equal(T, "error", res.Status)
}

func TestStatusAndDisable(T *testing.T) {
	d := &directory{accounts: map[string]*twofa.Account{
		"jane@example.com": {
			Email:   "jane@example.com",
			Type:    twofa.AuthenticatorApp,
			Secret:  strPtr(rfcSecret),
			DataURL: strPtr("data:image/png;base64,AAAA"),
		},
	}}
	app := newApp(d, &notifier{}, "jane@example.com")

	status, res := call(T, app, http.MethodGet, "/2fa/totp/setup", nil)
	require.Equal(T, http.StatusOK, status)
	assert.Equal(T, "TOTP Secret retrieved", res.Message)
	m := data(T, res)
	assert.Equal(T, "authenticator_app", m["twoFAType"])
	assert.Equal(T, rfcSecret, m["twoFASecret"])
	assert.Nil(T, m["phoneNumber"])

	status, res = call(T, app, http.MethodPatch, "/2fa/totp/disable", nil)
	require.Equal(T, http.StatusOK, status)
	assert.Equal(T, "TOTP Secret removed", res.Message)
	m = data(T, res)
	assert.Equal(T, "none", m["twoFAType"])
	assert.Nil(T, m["twoFASecret"])
	assert.Nil(T, m["twoFADataURL"])

	account := d.get("jane@example.com")
	assert.Equal(T, twofa.None, account.Type)
	assert.Nil(T, account.Secret)
	assert.Nil(T, account.DataURL)
}

func TestVerify(T *testing.T) {
	args := []struct {
		name      string
		stored    twofa.Type
		token     string
		status    int
		message   string
		confirmed twofa.Type
	}{
		{
			name:      "valid token confirms a pending app",
			stored:    twofa.AuthenticatorAppTemp,
			token:     "287082",
			status:    http.StatusOK,
			message:   "Valid TOTP token",
			confirmed: twofa.AuthenticatorApp,
		},
		{
			name:      "wrong token still confirms a pending sms text",
			stored:    twofa.SMSTextTemp,
			token:     "338314",
			status:    http.StatusBadRequest,
			message:   "Invalid TOTP token",
			confirmed: twofa.SMSText,
		},
		{
			name:      "confirmed type is left untouched",
			stored:    twofa.SMSText,
			token:     "755224",
			status:    http.StatusOK,
			message:   "Valid TOTP token",
			confirmed: twofa.SMSText,
		},
		{
			name:      "not enabled",
			stored:    twofa.None,
			token:     "287082",
			status:    http.StatusBadRequest,
			message:   "User doesn't have 2FA enabled.",
			confirmed: twofa.None,
		},
		{
			name:      "malformed token",
			stored:    twofa.AuthenticatorAppTemp,
			token:     "12a456",
			status:    http.StatusBadRequest,
			message:   "Invalid token - 6 numeric characters are required",
			confirmed: twofa.AuthenticatorAppTemp,
		},
		{
			name:      "short token",
			stored:    twofa.AuthenticatorAppTemp,
			token:     "28708",
			status:    http.StatusBadRequest,
			message:   "Invalid token - 6 numeric characters are required",
			confirmed: twofa.AuthenticatorAppTemp,
		},
	}

	for _, arg := range args {
		T.Run(arg.name, func(T *testing.T) {
			account := &twofa.Account{
				Email:       "jane@example.com",
				Type:        arg.stored,
				PhoneNumber: strPtr("+250788000000"),
			}
			if !arg.stored.IsNone() {
				account.Secret = strPtr(rfcSecret)
			}
			d := &directory{accounts: map[string]*twofa.Account{"jane@example.com": account}}
			app := newApp(d, &notifier{}, "jane@example.com")

			status, res := call(T, app, http.MethodPost, "/2fa/totp/verify", fiber.Map{"token": arg.token})
			assert.Equal(T, arg.status, status)
			assert.Equal(T, arg.message, res.Message)
			assert.Equal(T, arg.confirmed, d.get("jane@example.com").Type)

			if arg.message == "Valid TOTP token" || arg.message == "Invalid TOTP token" {
				m := data(T, res)
				assert.Equal(T, arg.status == http.StatusOK, m["isTokenValid"])
				assert.Equal(T, rfcSecret, m["twoFASecret"])
			}
		})
	}
}

func TestSendTokenText(T *testing.T) {
	n := &notifier{}
	d := &directory{accounts: map[string]*twofa.Account{}}
	app := newApp(d, n, "jane@example.com")

	status, res := call(T, app, http.MethodPost, "/2fa/totp/send-token-text", fiber.Map{
		"secret":      rfcSecret,
		"phoneNumber": "+250788000000",
	})
	require.Equal(T, http.StatusOK, status)
	assert.Equal(T, "TOTP token sent", res.Message)

	m := data(T, res)
	assert.Equal(T, "sms_text", m["twoFAType"])
	assert.Equal(T, "+250788000000", m["phoneNumber"])
	tokenData := m["tokenData"].(map[string]interface{})
	assert.Equal(T, "287082", tokenData["token"])

	require.Len(T, n.messages, 1)
	assert.Equal(T, "+250788000000", n.phoneNumbers[0])
	assert.Equal(T, "Your 6 Digit 60 seconds expiration PassCode is: 287082", n.messages[0])

	status, _ = call(T, app, http.MethodPost, "/2fa/totp/send-token-text", fiber.Map{
		"secret":      "not base32!",
		"phoneNumber": "+250788000000",
	})
	assert.Equal(T, http.StatusBadRequest, status)
	assert.Len(T, n.messages, 1)
}

func TestAdminDisableTwoFactor(T *testing.T) {
	d := &directory{accounts: map[string]*twofa.Account{
		"jane@example.com": {Email: "jane@example.com", Type: twofa.SMSText, Secret: strPtr(rfcSecret)},
	}}
	app := newApp(d, &notifier{}, "")

	status, res := call(T, app, http.MethodDelete, "/admin/users/2fa", fiber.Map{"email": "jane@example.com"})
	require.Equal(T, http.StatusOK, status)
	assert.Equal(T, "TOTP Secret removed", res.Message)
	assert.Equal(T, twofa.None, d.get("jane@example.com").Type)

	status, res = call(T, app, http.MethodDelete, "/admin/users/2fa", fiber.Map{"email": "ghost@example.com"})
	assert.Equal(T, http.StatusBadRequest, status)
	assert.Equal(T, "No account with the given email", res.Message)
}

// disablingDirectory resets the user right after the configuration is read
type disablingDirectory struct {
	*directory
}

func (d disablingDirectory) Account(ctx context.Context, email string) (*twofa.Account, error) {
	account, err := d.directory.Account(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := d.directory.SaveTwoFactor(ctx, email, twofa.None, nil, nil); err != nil {
		return nil, err
	}
	return account, nil
}

func TestVerifyAfterDisable(T *testing.T) {
	d := &directory{accounts: map[string]*twofa.Account{
		"jane@example.com": {Email: "jane@example.com", Type: twofa.SMSTextTemp, Secret: strPtr(rfcSecret)},
	}}
	twoFAC := controllers.TwoFA{
		Manager: twofa.New(disablingDirectory{d}, &notifier{}, twofa.Options{
			Now: func() time.Time { return time.Unix(59, 0) },
		}),
	}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("email", "jane@example.com")
		return c.Next()
	})
	app.Post("/2fa/totp/verify", twoFAC.Verify)

	status, res := call(T, app, http.MethodPost, "/2fa/totp/verify", fiber.Map{"token": "287082"})
	assert.Equal(T, http.StatusConflict, status)
	assert.Equal(T, "2FA configuration changed, fetch it again", res.Message)

	account := d.get("jane@example.com")
	assert.Equal(T, twofa.None, account.Type)
	assert.Nil(T, account.Secret)
}
