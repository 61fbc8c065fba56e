package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user can register under. Role is fixed at registration;
// no endpoint changes it afterwards.
const (
	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
)

// Profile is the user's profile sub-document. All fields are optional;
// field names match what the frontend already sends and stores.
type Profile struct {
	Bio                string   `bson:"bio,omitempty" json:"bio,omitempty"`
	Skills             []string `bson:"skills,omitempty" json:"skills,omitempty"`
	ProfilePhoto       string   `bson:"profilePhoto,omitempty" json:"profilePhoto,omitempty"`
	Resume             string   `bson:"resume,omitempty" json:"resume,omitempty"`
	ResumeOriginalName string   `bson:"resumeOriginalName,omitempty" json:"resumeOriginalName,omitempty"`
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Fullname    string `bson:"fullname" json:"fullname"`
	Email       string `bson:"email" json:"email"`
	PhoneNumber string `bson:"phoneNumber" json:"phoneNumber"`
	Password    string `bson:"password" json:"-"` // bcrypt hash, never serialized
	Role        string `bson:"role" json:"role"`

	Profile Profile `bson:"profile" json:"profile"`
}

// PublicUser is the only user shape handlers may return: everything
// except the password hash.
type PublicUser struct {
	ID          primitive.ObjectID `json:"_id"`
	Fullname    string             `json:"fullname"`
	Email       string             `json:"email"`
	PhoneNumber string             `json:"phoneNumber"`
	Role        string             `json:"role"`
	Profile     Profile            `json:"profile"`
}

// Public returns the user's public-safe projection.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:          u.ID,
		Fullname:    u.Fullname,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		Profile:     u.Profile,
	}
}
