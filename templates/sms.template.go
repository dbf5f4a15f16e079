// Package templates contains the message templates
package templates

import (
	"bytes"
	"text/template"
)

// SMS contains all the templates that are delivered through SMS text
type SMS struct{}

var tokenTmpl = template.Must(template.New("smsToken").Parse(
	`Your {{.Digits}} Digit {{.Expiration}} seconds expiration PassCode is: {{.Token}}`,
))

// TokenTmpl is a function that is used to get the SMS text carrying a one time token
func (SMS) TokenTmpl(token string) (message string, err error) {
	var buf bytes.Buffer
	err = tokenTmpl.Execute(&buf, struct {
		Token      string
		Digits     int
		Expiration int
	}{
		Token:      token,
		Digits:     len(token),
		Expiration: 60,
	})
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}
