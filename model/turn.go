package model

// Turn senders as the frontend reports them. The assistant gateway
// maps these onto the provider's two-role naming.
const (
	TurnUser      = "user"
	TurnAssistant = "ai"
)

// Turn is one entry of the assistant history a client replays on every
// request. The server never stores turns; the client owns the
// transcript.
type Turn struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}
