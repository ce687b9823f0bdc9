package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a member profile stored in MongoDB
type User struct {
	ID             primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name           string               `json:"name" bson:"name"`
	Email          string               `json:"email" bson:"email"`
	ProfilePicture string               `json:"profilePicture" bson:"profilePicture"`
	Headline       string               `json:"headline" bson:"headline"`
	Location       string               `json:"location" bson:"location"`
	About          string               `json:"about" bson:"about"`
	Experience     []Experience         `json:"experience" bson:"experience"`
	Education      []Education          `json:"education" bson:"education"`
	Skills         []string             `json:"skills" bson:"skills"`
	Connections    []primitive.ObjectID `json:"connections" bson:"connections"` // follow order
	FirebaseUID    string               `json:"-" bson:"firebase_uid,omitempty"`
	CreatedAt      time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// Experience is a single position on a user's profile
type Experience struct {
	Title       string     `json:"title" bson:"title" validate:"required"`
	Company     string     `json:"company" bson:"company" validate:"required"`
	StartDate   time.Time  `json:"startDate" bson:"startDate" validate:"required"`
	EndDate     *time.Time `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Description string     `json:"description" bson:"description"`
}

// Education is a single school entry on a user's profile
type Education struct {
	School       string     `json:"school" bson:"school" validate:"required"`
	Degree       string     `json:"degree" bson:"degree" validate:"required"`
	FieldOfStudy string     `json:"fieldOfStudy" bson:"fieldOfStudy"`
	StartDate    time.Time  `json:"startDate" bson:"startDate" validate:"required"`
	EndDate      *time.Time `json:"endDate,omitempty" bson:"endDate,omitempty"`
}

// ConnectionSet returns the user's connections as an insertion-ordered set.
func (u *User) ConnectionSet() *ConnectionSet {
	return NewConnectionSet(u.Connections)
}

// ToCompact reduces a user to the fields shown next to a notification or a mutual connection
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:             u.ID.Hex(),
		Name:           u.Name,
		ProfilePicture: u.ProfilePicture,
	}
}

// UpdateProfileRequest defines the request body for updating the caller's profile
type UpdateProfileRequest struct {
	Name           string       `json:"name,omitempty" validate:"omitempty,min=2,max=80"`
	ProfilePicture string       `json:"profilePicture,omitempty" validate:"omitempty,url"`
	Headline       string       `json:"headline,omitempty" validate:"omitempty,max=220"`
	Location       string       `json:"location,omitempty" validate:"omitempty,max=120"`
	About          string       `json:"about,omitempty" validate:"omitempty,max=2600"`
	Experience     []Experience `json:"experience,omitempty" validate:"omitempty,dive"`
	Education      []Education  `json:"education,omitempty" validate:"omitempty,dive"`
	Skills         []string     `json:"skills,omitempty" validate:"omitempty,dive,min=1,max=60"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
