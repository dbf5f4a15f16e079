package twofa

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Channel is the delivery channel of the one time token
type Channel string

const (
	// ChannelNone is used when two factor authentication is disabled
	ChannelNone Channel = "none"
	// ChannelSMS delivers the token through an SMS text
	ChannelSMS Channel = "sms_text"
	// ChannelApp means the token is read from an authenticator app
	ChannelApp Channel = "authenticator_app"
)

const tempSuffix = "_temp"

// Type is the two factor authentication type of a user, a channel and
// wether the channel is still waiting for its first verification
type Type struct {
	Channel Channel
	Pending bool
}

var (
	// None -> two factor authentication is disabled
	None = Type{Channel: ChannelNone}
	// SMSText -> confirmed SMS text
	SMSText = Type{Channel: ChannelSMS}
	// SMSTextTemp -> SMS text awaiting the first verification
	SMSTextTemp = Type{Channel: ChannelSMS, Pending: true}
	// AuthenticatorApp -> confirmed authenticator app
	AuthenticatorApp = Type{Channel: ChannelApp}
	// AuthenticatorAppTemp -> authenticator app awaiting the first verification
	AuthenticatorAppTemp = Type{Channel: ChannelApp, Pending: true}
)

// Types contains every valid type
var Types = []Type{None, SMSText, SMSTextTemp, AuthenticatorApp, AuthenticatorAppTemp}

// ParseType is a function that is used to parse the stored or received representation of the type
func ParseType(s string) (Type, error) {
	pending := strings.HasSuffix(s, tempSuffix)
	t := Type{
		Channel: Channel(strings.TrimSuffix(s, tempSuffix)),
		Pending: pending,
	}
	if !t.valid() {
		return Type{}, fmt.Errorf("%w: %q", ErrInvalidType, s)
	}

	return t, nil
}

func (t Type) valid() bool {
	switch t.Channel {
	case ChannelSMS, ChannelApp:
		return true
	case ChannelNone:
		return !t.Pending
	default:
		return false
	}
}

func (t Type) String() string {
	if t.Channel == "" {
		return string(ChannelNone)
	}
	if t.Pending {
		return string(t.Channel) + tempSuffix
	}
	return string(t.Channel)
}

// IsNone reports wether two factor authentication is disabled
func (t Type) IsNone() bool {
	return t.Channel == "" || t.Channel == ChannelNone
}

// IsSMS reports wether the type belongs to the SMS text channel
func (t Type) IsSMS() bool {
	return t.Channel == ChannelSMS
}

// IsApp reports wether the type belongs to the authenticator app channel
func (t Type) IsApp() bool {
	return t.Channel == ChannelApp
}

// AsTemp moves the type to the pending state of the same channel
func (t Type) AsTemp() Type {
	if t.IsNone() {
		return None
	}
	return Type{Channel: t.Channel, Pending: true}
}

// Confirm drops the pending state
func (t Type) Confirm() Type {
	if t.IsNone() {
		return None
	}
	return Type{Channel: t.Channel}
}

// Reset disables two factor authentication
func (Type) Reset() Type {
	return None
}

// MarshalText implements encoding.TextMarshaler
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

// Scan implements sql.Scanner so that gorm can read the column
func (t *Type) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = None
		return nil
	case string:
		return t.UnmarshalText([]byte(v))
	case []byte:
		return t.UnmarshalText(v)
	default:
		return fmt.Errorf("cannot scan %T into twofa.Type", value)
	}
}

// Value implements driver.Valuer
func (t Type) Value() (driver.Value, error) {
	return t.String(), nil
}
