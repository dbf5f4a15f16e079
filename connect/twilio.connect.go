package connect

import (
	"github.com/VinukaThejana/nomad/config"
	"github.com/twilio/twilio-go"
)

// InitTwilio is a function that is used to initialize the twilio client that delivers SMS texts
func (c *Connector) InitTwilio(env *config.Env) {
	c.SMS = twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: env.TwilioAccountSID,
		Password: env.TwilioAuthToken,
	})
}
