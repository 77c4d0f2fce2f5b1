package dto

import (
	"time"

	"github.com/arcana-edu/tarot-lms-api/internal/models"
)

// UserRef summarizes a user for nesting inside other responses.
type UserRef struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// GraderRef summarizes a grading user inside feedback responses.
type GraderRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// UserResponse is the serialized representation of a user account.
type UserResponse struct {
	ID              uint       `json:"id"`
	Auth0ID         *string    `json:"auth0_id"`
	Name            string     `json:"name"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Email           string     `json:"email"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	Picture         string     `json:"picture"`
	Bio             string     `json:"bio"`
	PhoneNumber     string     `json:"phone_number"`
	Role            string     `json:"role"`
	IsActive        bool       `json:"is_active"`
	LastLoginAt     *time.Time `json:"last_login_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewUserResponse converts a User model into a DTO.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		ID:              model.ID,
		Auth0ID:         model.Auth0ID,
		Name:            model.Name,
		FirstName:       model.FirstName,
		LastName:        model.LastName,
		Email:           model.Email,
		EmailVerifiedAt: model.EmailVerifiedAt,
		Picture:         model.Picture,
		Bio:             model.Bio,
		PhoneNumber:     model.PhoneNumber,
		Role:            model.Role,
		IsActive:        model.IsActive,
		LastLoginAt:     model.LastLoginAt,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

// NewUserResponseSlice converts user models into DTOs.
func NewUserResponseSlice(users []models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}

	return responses
}

// NewUserRef builds the nested user projection.
func NewUserRef(model models.User) UserRef {
	return UserRef{ID: model.ID, Name: model.Name, Email: model.Email}
}
