package transport

import "time"

type CreatePropertyRequest struct {
	Name      string   `json:"name" validate:"required,min=1,max=200"`
	Address   string   `json:"address" validate:"required,min=1,max=300"`
	Price     int64    `json:"price" validate:"required,min=0"`
	Layout    string   `json:"layout" validate:"max=40"`
	Size      float64  `json:"size" validate:"min=0"`
	BuiltYear int      `json:"builtYear" validate:"omitempty,min=1900,max=2100"`
	Status    string   `json:"status" validate:"omitempty,oneof=active negotiating sold"`
	Images    []string `json:"images" validate:"max=20,dive,url"`
	Memo      string   `json:"memo" validate:"max=4000"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
}

// UpdatePropertyRequest carries only the fields the client wants changed.
// Applying it to a seed entry creates a live override of that entry.
type UpdatePropertyRequest struct {
	Name      *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Address   *string  `json:"address" validate:"omitempty,min=1,max=300"`
	Price     *int64   `json:"price" validate:"omitempty,min=0"`
	Layout    *string  `json:"layout" validate:"omitempty,max=40"`
	Size      *float64 `json:"size" validate:"omitempty,min=0"`
	BuiltYear *int     `json:"builtYear" validate:"omitempty,min=1900,max=2100"`
	Status    *string  `json:"status" validate:"omitempty,oneof=active negotiating sold"`
	Images    []string `json:"images" validate:"omitempty,max=20,dive,url"`
	Memo      *string  `json:"memo" validate:"omitempty,max=4000"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
}

type PropertyResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	Price     int64      `json:"price"`
	Layout    string     `json:"layout,omitempty"`
	Size      float64    `json:"size,omitempty"`
	BuiltYear int        `json:"builtYear,omitempty"`
	Status    string     `json:"status"`
	Images    []string   `json:"images"`
	Memo      string     `json:"memo,omitempty"`
	Latitude  *float64   `json:"latitude,omitempty"`
	Longitude *float64   `json:"longitude,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type PropertyListResponse struct {
	Items []PropertyResponse `json:"items"`
}

type ImageUploadURLRequest struct {
	FileName    string `json:"fileName" validate:"required,min=1,max=255"`
	ContentType string `json:"contentType" validate:"required,min=1,max=100"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,min=1"`
}

type ImageUploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileKey   string `json:"fileKey"`
	ExpiresAt int64  `json:"expiresAt"`
}
