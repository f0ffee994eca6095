package api

type ErrorResponse struct {
	Error   string   `json:"error" example:"something went wrong"`
	Details []string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
