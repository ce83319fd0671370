package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type submitModuleRequest struct {
	Name        string   `json:"name"        validate:"required"`
	Link        string   `json:"link"        validate:"required,url"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"    validate:"max=20,dive,required"`
}

type transitionRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

type submitRatingRequest struct {
	Score int `json:"score" validate:"required,min=1,max=5"`
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user moderator admin"`
}

// --- Response types ---

type moduleResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Link        string   `json:"link"`
	AuthorID    string   `json:"author_id"`
	Status      string   `json:"status"`
	CreatedAt   string   `json:"created_at"`
}

type moduleListResponse struct {
	Count   int              `json:"count"`
	Modules []moduleResponse `json:"modules"`
}

type searchResponse struct {
	Query   string           `json:"query"`
	Count   int              `json:"count"`
	Modules []moduleResponse `json:"modules"`
}

type ratingResponse struct {
	ModuleID string  `json:"module_id"`
	Average  float64 `json:"average"`
	Count    int64   `json:"count"`
	Updated  bool    `json:"updated,omitempty"`
}

type userResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	CreatedAt   string `json:"created_at"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
