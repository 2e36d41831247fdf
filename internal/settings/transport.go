package settings

// Transport DTOs for the settings endpoints.

type StatusConfigDTO struct {
	ID    string `json:"id" validate:"required,min=1,max=40"`
	Label string `json:"label" validate:"required,min=1,max=40"`
	Color string `json:"color" validate:"required,hexcolor"`
	Order int    `json:"order" validate:"min=1,max=6"`
}

type PutStatusesRequest struct {
	Config []StatusConfigDTO `json:"config" validate:"required,len=6,dive"`
}

type StatusesResponse struct {
	Config []StatusConfigDTO `json:"config"`
}

type PutTargetsRequest struct {
	Months map[string]int64 `json:"months" validate:"required"`
}

type TargetsResponse struct {
	Year   int              `json:"year"`
	Months map[string]int64 `json:"months"`
}
