package services

import (
	"context"
	"fmt"

	"github.com/VinukaThejana/go-utils/logger"
	"github.com/VinukaThejana/nomad/twofa"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMS delivers SMS texts through twilio
type SMS struct {
	Client *twilio.RestClient
	From   string
}

var _ twofa.Notifier = (*SMS)(nil)

// Send is a function that is used to send the message to the given phone number
func (s *SMS) Send(ctx context.Context, phoneNumber, message string) error {
	if phoneNumber == "" || message == "" {
		return fmt.Errorf("an SMS text requires a phone number and a message")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phoneNumber)
	params.SetFrom(s.From)
	params.SetBody(message)

	res, err := s.Client.Api.CreateMessage(params)
	if err != nil {
		return err
	}

	if res.Sid != nil {
		logger.Log(fmt.Sprintf("[ %s ] : SMS text sent", *res.Sid))
	}
	return nil
}
