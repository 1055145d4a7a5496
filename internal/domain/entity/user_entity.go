package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Passwords are stored as bcrypt hashes in Password field and are never
// serialized into API payloads.
type User struct {
	ID               string
	Fullname         string
	Email            string
	Password         string
	Bio              string
	ProfilePic       string
	NativeLanguage   string
	LearningLanguage string
	Location         string
	IsOnboarded      bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Summary is the public projection of a user embedded in friend lists and
// request listings.
type Summary struct {
	ID               string `json:"id"`
	Fullname         string `json:"fullname"`
	ProfilePic       string `json:"profilePic"`
	NativeLanguage   string `json:"nativeLanguage"`
	LearningLanguage string `json:"learningLanguage"`
}

// Summary returns the user's public projection.
func (u *User) Summary() Summary {
	return Summary{
		ID:               u.ID,
		Fullname:         u.Fullname,
		ProfilePic:       u.ProfilePic,
		NativeLanguage:   u.NativeLanguage,
		LearningLanguage: u.LearningLanguage,
	}
}
