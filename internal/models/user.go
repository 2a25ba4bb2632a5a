package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID             int64     `db:"user_id" json:"user_id"`
	Username       string    `db:"username" json:"username"`
	Email          string    `db:"email" json:"email"`
	PasswordHash   string    `db:"password" json:"-"`
	ProfilePicture *string   `db:"profile_picture" json:"profile_picture"`
	CreatedDate    time.Time `db:"created_date" json:"created_date"`
	UpdatedDate    time.Time `db:"updated_date" json:"updated_date"`
}

// Claims defines the structure of the JWT claims. Registration and login
// issue the same claim set.
type Claims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
