package config

import (
	"time"

	"github.com/VinukaThejana/go-utils/logger"
	"github.com/spf13/viper"
)

// Env is structure containing env variables
type Env struct {
	DSN                          string        `mapstructure:"DATABASE_URL" validate:"required"`
	DevEnv                       string        `mapstructure:"DEV_ENV" validate:"required,oneof=DEV PROD TEST"`
	Port                         string        `mapstructure:"PORT" validate:"required,numeric"`
	FrontendHostname             string        `mapstructure:"FRONTEND_HOSTNAME" validate:"required,hostname"`
	AccessTokenPrivateKey        string        `mapstructure:"ACCESS_TOKEN_PRIVATE_KEY" validate:"required"`
	AccessTokenPublicKey         string        `mapstructure:"ACCESS_TOKEN_PUBLIC_KEY" validate:"required"`
	AdminSecret                  string        `mapstructure:"ADMIN_SECRET" validate:"required"`
	RedisRatelimiterUsername     string        `mapstructure:"REDIS_RATELIMITER_USERNAME"`
	RedisRatelimiterPassword     string        `mapstructure:"REDIS_RATELIMITER_PASSWORD"`
	RedisRatelimiterHost         string        `mapstructure:"REDIS_RATELIMITER_HOST" validate:"required"`
	RedisSystemURL               string        `mapstructure:"REDIS_SYSTEM_URL" validate:"required,uri"`
	RedisLockURL                 string        `mapstructure:"REDIS_LOCK_URL" validate:"omitempty,uri"`
	TwilioAccountSID             string        `mapstructure:"TWILIO_ACCOUNT_SID" validate:"required"`
	TwilioAuthToken              string        `mapstructure:"TWILIO_AUTH_TOKEN" validate:"required"`
	TwilioFrom                   string        `mapstructure:"TWILIO_FROM" validate:"required,e164"`
	TwoFAIssuer                  string        `mapstructure:"TWOFA_ISSUER" validate:"required"`
	AccessTokenExpires           time.Duration `mapstructure:"ACCESS_TOKEN_EXPIRED_IN" validate:"required"`
	LockTTL                      time.Duration `mapstructure:"LOCK_TTL" validate:"required"`
	LockWait                     time.Duration `mapstructure:"LOCK_WAIT" validate:"required"`
	AccessTokenMaxAge            int           `mapstructure:"ACCESS_TOKEN_MAXAGE" validate:"required,number"`
	RedisRatelimiterPort         int           `mapstructure:"REDIS_RATELIMITER_PORT" validate:"required,number"`
	TwoFARequirePhoneBeforeSetup bool          `mapstructure:"TWOFA_REQUIRE_PHONE_BEFORE_SETUP"`
	TwoFAConfirmOnValidTokenOnly bool          `mapstructure:"TWOFA_CONFIRM_ON_VALID_TOKEN_ONLY"`
}

// Load is a function that is used to laod the env variables from the file and the enviroment
func (e *Env) Load(path ...string) {
	if len(path) > 0 {
		viper.AddConfigPath(path[0])
	} else {
		viper.AddConfigPath(".")
	}
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("TWOFA_ISSUER", "Barefoot Nomad")
	viper.SetDefault("LOCK_TTL", 5*time.Second)
	viper.SetDefault("LOCK_WAIT", 2*time.Second)
	viper.SetDefault("TWOFA_REQUIRE_PHONE_BEFORE_SETUP", false)
	viper.SetDefault("TWOFA_CONFIRM_ON_VALID_TOKEN_ONLY", false)

	err := viper.ReadInConfig()
	if err != nil {
		logger.Error(err)
	}

	err = viper.Unmarshal(&e)
	if err != nil {
		logger.Errorf(err)
	}

	logger.Validatef(e)
}
