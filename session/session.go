// Package session contains session related activity
package session

import (
	"github.com/VinukaThejana/nomad/token"
	"github.com/gofiber/fiber/v2"
)

// User is the authenticated caller
type User struct {
	ID    string
	Email string
	Name  string
	Role  string
}

// Add is a function that is used to add ther user details to the session
func Add(c *fiber.Ctx, claims *token.Claims) {
	if claims == nil {
		return
	}

	c.Locals("id", claims.Subject)
	c.Locals("email", claims.Email)
	c.Locals("name", claims.FirstName)
	c.Locals("role", claims.Role)
}

// Get the user details from the session, nil when the request is not authenticated
func Get(c *fiber.Ctx) *User {
	email, ok := c.Locals("email").(string)
	if !ok || email == "" {
		return nil
	}

	id, _ := c.Locals("id").(string)
	name, _ := c.Locals("name").(string)
	role, _ := c.Locals("role").(string)

	return &User{
		ID:    id,
		Email: email,
		Name:  name,
		Role:  role,
	}
}

// SaveAccessToken save the access token
func SaveAccessToken(c *fiber.Ctx, token string) {
	c.Locals("access_token", token)
}

// GetAccessToken get the access token
func GetAccessToken(c *fiber.Ctx) string {
	token, _ := c.Locals("access_token").(string)
	return token
}
