package types

// CreateSessionRequest starts a new shell session
type CreateSessionRequest struct {
	PersonaID string `json:"persona_id"`
}

// OpenWindowRequest opens an app window
type OpenWindowRequest struct {
	AppID string `json:"app_id" binding:"required"`
}
