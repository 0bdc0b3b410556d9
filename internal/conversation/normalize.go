package conversation

import (
	"strings"

	"travelchat/internal/webhook"
)

// Normalize turns a raw reply into assistant entries. For each message, in
// order, it emits a text entry when the text is non-blank and then a button
// group when at least one usable button remains. Messages with neither are
// dropped. Normalize is pure; the same reply always yields the same entries.
func Normalize(reply webhook.Reply) []Entry {
	out := make([]Entry, 0, len(reply))
	for _, msg := range reply {
		if strings.TrimSpace(msg.Text) != "" {
			out = append(out, TextEntry(OriginAssistant, msg.Text))
		}
		if buttons := normalizeButtons(msg.Buttons); len(buttons) > 0 {
			out = append(out, Entry{Origin: OriginAssistant, Kind: KindButtonGroup, Buttons: buttons})
		}
	}
	return out
}

// normalizeButtons maps title to label. A button without a title shows its
// payload; one without a payload has nothing to send and is skipped.
func normalizeButtons(raw []webhook.Button) []Button {
	if len(raw) == 0 {
		return nil
	}
	out := make([]Button, 0, len(raw))
	for _, b := range raw {
		if strings.TrimSpace(b.Payload) == "" {
			continue
		}
		label := b.Title
		if strings.TrimSpace(label) == "" {
			label = b.Payload
		}
		out = append(out, Button{Label: label, Payload: b.Payload})
	}
	return out
}
