// Package token is used to create and validate access tokens
package token

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/VinukaThejana/nomad/config"
	"github.com/VinukaThejana/nomad/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Details is a struct that contains the data that need to be used when creating tokens
type Details struct {
	Token     *string
	ExpiresIn *int64
	TokenUUID string
	UserID    string
}

// Claims are the claims carried by the access token
type Claims struct {
	jwt.RegisteredClaims
	Email     string `json:"email"`
	FirstName string `json:"name"`
	Role      string `json:"role"`
}

// AccessToken is a struct that is used to perform operations on access tokens
type AccessToken struct {
	Env *config.Env
	Now func() time.Time
}

func (a *AccessToken) now() time.Time {
	if a.Now != nil {
		return a.Now().UTC()
	}
	return time.Now().UTC()
}

// Create is a function that is used to create the access token
func (a *AccessToken) Create(user models.User) (tokenDetails *Details, err error) {
	if user.ID == nil {
		return nil, fmt.Errorf("cannot create an access token for a user without an id")
	}
	now := a.now()

	tokenUUID, err := uuid.NewUUID()
	if err != nil {
		return nil, err
	}

	tokenDetails = &Details{
		ExpiresIn: new(int64),
		Token:     new(string),
		TokenUUID: tokenUUID.String(),
		UserID:    user.ID.String(),
	}
	*tokenDetails.ExpiresIn = now.Add(a.Env.AccessTokenExpires).Unix()

	decodedPrivateKey, err := base64.StdEncoding.DecodeString(a.Env.AccessTokenPrivateKey)
	if err != nil {
		return nil, err
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM(decodedPrivateKey)
	if err != nil {
		return nil, err
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenDetails.TokenUUID,
			Subject:   tokenDetails.UserID,
			ExpiresAt: jwt.NewNumericDate(time.Unix(*tokenDetails.ExpiresIn, 0)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		Email:     user.Email,
		FirstName: user.FirstName,
		Role:      user.Role,
	}

	*tokenDetails.Token, err = jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return nil, err
	}

	return tokenDetails, nil
}

// Validate is a function that is used to validate the access token and return its claims
func (a *AccessToken) Validate(token string) (*Claims, error) {
	decodedPublicKey, err := base64.StdEncoding.DecodeString(a.Env.AccessTokenPublicKey)
	if err != nil {
		return nil, err
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM(decodedPublicKey)
	if err != nil {
		return nil, err
	}

	var claims Claims
	_, err = jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method : %s", t.Header["alg"])
		}

		return key, nil
	}, jwt.WithTimeFunc(a.now))
	if err != nil {
		return nil, err
	}

	if claims.Email == "" {
		return nil, fmt.Errorf("access token does not carry an email")
	}

	return &claims, nil
}
