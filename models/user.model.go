// Package models contains the relational database models
package models

import (
	"time"

	"github.com/VinukaThejana/nomad/twofa"
	"github.com/google/uuid"
)

// User represents the user in the relational database
type User struct {
	ID           *uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	CreatedAt    *time.Time `gorm:"not null;default:now()"`
	UpdatedAt    *time.Time `gorm:"not null;default:now()"`
	FirstName    string     `gorm:"type:varchar(60);not null"`
	LastName     string     `gorm:"type:varchar(60);default:null"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password     string     `gorm:"not null"`
	Role         string     `gorm:"type:varchar(30);not null;default:'requester'"`
	PhoneNumber  *string    `gorm:"type:varchar(32);default:null"`
	TwoFAType    twofa.Type `gorm:"column:two_fa_type;type:varchar(32);not null;default:'none'"`
	TwoFASecret  *string    `gorm:"column:two_fa_secret;type:varchar(64);default:null"`
	TwoFADataURL *string    `gorm:"column:two_fa_data_url;type:text;default:null"`
}
