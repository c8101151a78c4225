package users

import "time"

// User is a registered account. Password and reset fields never leave the server.
type User struct {
	ID             string     `json:"id"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Education      string     `json:"education"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	GoogleID       string     `json:"googleId,omitempty"`
	IsAdmin        bool       `json:"isAdmin"`
	ResetTokenHash string     `json:"-"`
	ResetExpiresAt *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	switch {
	case u.LastName == "":
		return u.FirstName
	case u.FirstName == "":
		return u.LastName
	}
	return u.FirstName + " " + u.LastName
}

type RegisterInput struct {
	FirstName string `json:"firstName" binding:"required,notblank"`
	LastName  string `json:"lastName" binding:"required,notblank"`
	Education string `json:"education" binding:"required,notblank"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type resetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type newPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// GoogleProfile is the identity returned by Google's userinfo endpoint.
type GoogleProfile struct {
	ID    string
	Email string
	Name  string
}
