// Package webhook is the HTTP client for the dialogue manager's REST channel
// (POST {base}/webhooks/rest/webhook).
package webhook

// Turn is the outbound request body for a single user turn.
type Turn struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

// Reply is the decoded response: zero or more bot messages in the order the
// endpoint produced them.
type Reply []Message

// Message is one raw bot message. Either field may be absent.
type Message struct {
	RecipientID string   `json:"recipient_id,omitempty"`
	Text        string   `json:"text,omitempty"`
	Buttons     []Button `json:"buttons,omitempty"`
}

// Button is a quick-reply option. Title is what the user sees, Payload is
// what gets sent back when it is chosen.
type Button struct {
	Title   string `json:"title"`
	Payload string `json:"payload"`
}
