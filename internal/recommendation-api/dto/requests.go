package dto

// BindingSuccessRequest é o corpo de POST /api/telegram/binding-success
type BindingSuccessRequest struct {
	ChatID   *int64  `json:"chat_id"`
	UserName *string `json:"user_name"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type BotStatusResponse struct {
	Status             string `json:"status"` // running | stopped
	BotTokenConfigured bool   `json:"bot_token_configured"`
}

// ErrorResponse segue o formato {"detail": "..."} consumido pelo frontend
type ErrorResponse struct {
	Detail string `json:"detail"`
}
