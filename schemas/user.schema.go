package schemas

import (
	"github.com/VinukaThejana/nomad/models"
	"github.com/VinukaThejana/nomad/twofa"
	"github.com/google/uuid"
)

// User is schema that contians user freindly user details
type User struct {
	ID          *uuid.UUID `json:"id"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	PhoneNumber *string    `json:"phoneNumber"`
	TwoFAType   twofa.Type `json:"twoFAType"`
}

// FilterUser is a function that is used to filter the user model to a user freindly format
func FilterUser(user models.User) User {
	return User{
		ID:          user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		Role:        user.Role,
		PhoneNumber: user.PhoneNumber,
		TwoFAType:   user.TwoFAType,
	}
}
