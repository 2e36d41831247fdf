package agents

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
	LastName  string `json:"lastName" validate:"required,min=1,max=60"`
	FirstName string `json:"firstName" validate:"required,min=1,max=60"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string        `json:"accessToken"`
	Agent       AgentResponse `json:"agent"`
}

type UpdateProfileRequest struct {
	LastName  *string `json:"lastName" validate:"omitempty,min=1,max=60"`
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=60"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url"`
}

type AgentResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	LastName  string    `json:"lastName"`
	FirstName string    `json:"firstName"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type AgentListResponse struct {
	Items []AgentResponse `json:"items"`
}

type AvatarUploadURLRequest struct {
	FileName    string `json:"fileName" validate:"required,min=1,max=255"`
	ContentType string `json:"contentType" validate:"required,min=1,max=100"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,min=1"`
}

type AvatarUploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileKey   string `json:"fileKey"`
	ExpiresAt int64  `json:"expiresAt"`
}
