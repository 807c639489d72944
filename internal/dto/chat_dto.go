package dto

// ChatMessageRequest is the inbound chat event. RequestTime must already be
// formatted with constant.RequestTimeLayout; Type selects the text or
// document path.
type ChatMessageRequest struct {
	UserId      string `json:"user_id" validate:"required"`
	RequestId   string `json:"request_id" validate:"required"`
	RequestTime string `json:"request_time" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=text document"`
	Body        string `json:"body" validate:"required"`
}

// ChatMessageResponse is the reply envelope. StatusCode is part of the body
// on purpose; callers read it instead of the transport status.
type ChatMessageResponse struct {
	StatusCode int    `json:"statusCode"`
	Msg        string `json:"msg"`
}

// TurnLoggedMessage is published after a turn has been persisted so the
// conversation buffer can be rebuilt from the call log.
type TurnLoggedMessage struct {
	UserId string `json:"user_id"`
}
