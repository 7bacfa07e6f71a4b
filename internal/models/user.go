package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a member of the skill swap platform.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	HashedPassword string             `bson:"password,omitempty" json:"-"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`
	ProfilePhoto   string             `bson:"profilePhoto,omitempty" json:"profilePhoto,omitempty"`
	SkillsOffered  []string           `bson:"skillsOffered" json:"skillsOffered"`
	SkillsWanted   []string           `bson:"skillsWanted" json:"skillsWanted"`
	Availability   []string           `bson:"availability" json:"availability"`
	IsPublic       bool               `bson:"isPublic" json:"isPublic"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	Rating         float64            `bson:"rating" json:"rating"`
	ReviewCount    int                `bson:"reviewCount" json:"reviewCount"`
	Role           string             `bson:"role" json:"role"` // "user" or "admin"
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PublicUser is the projection of a user other members are allowed to see.
type PublicUser struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email,omitempty" json:"email,omitempty"`
	ProfilePhoto string             `bson:"profilePhoto,omitempty" json:"profilePhoto,omitempty"`
}

// ProfileUpdate carries the fields a user may change on their own profile.
// Email, password and role are deliberately absent.
type ProfileUpdate struct {
	Name          *string  `json:"name,omitempty"`
	Location      *string  `json:"location,omitempty"`
	ProfilePhoto  *string  `json:"profilePhoto,omitempty"`
	SkillsOffered []string `json:"skillsOffered,omitempty"`
	SkillsWanted  []string `json:"skillsWanted,omitempty"`
	Availability  []string `json:"availability,omitempty"`
	IsPublic      *bool    `json:"isPublic,omitempty"`
}
