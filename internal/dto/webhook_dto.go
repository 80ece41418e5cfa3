package dto

// InboundMessageRequest is one turn from the messaging gateway: an opaque
// sender identifier and the raw message text.
type InboundMessageRequest struct {
	From string `json:"from" validate:"required"`
	Text string `json:"text" validate:"required"`
}

// InboundMessageResponse carries exactly one reply for the turn.
type InboundMessageResponse struct {
	Reply string `json:"reply"`
}
