// Package conversation owns the chat log: the entry model, the reply
// normalizer and the session controller that drives one turn at a time.
package conversation

import (
	"errors"
	"slices"
	"strings"
	"time"
)

// Origin says who produced an entry.
type Origin int

const (
	OriginUser Origin = iota
	OriginAssistant
)

func (o Origin) String() string {
	switch o {
	case OriginUser:
		return "user"
	case OriginAssistant:
		return "assistant"
	default:
		return "unknown"
	}
}

// Kind discriminates the entry payload.
type Kind int

const (
	KindText Kind = iota
	KindButtonGroup
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindButtonGroup:
		return "button_group"
	default:
		return "unknown"
	}
}

var (
	ErrEmptyText    = errors.New("conversation: text entry without text")
	ErrEmptyButtons = errors.New("conversation: button group without buttons")
	ErrMixedPayload = errors.New("conversation: entry carries both text and buttons")
	ErrUnknownKind  = errors.New("conversation: unknown entry kind")
)

// Button is one selectable option. Label is displayed, Payload is sent.
type Button struct {
	Label   string
	Payload string
}

// Entry is one immutable unit of the log. Exactly one of Text and Buttons is
// set, matching Kind. ID and CreatedAt are stamped when the entry is appended.
type Entry struct {
	ID        string
	CreatedAt time.Time
	Origin    Origin
	Kind      Kind
	Text      string
	Buttons   []Button
}

// TextEntry builds a text entry.
func TextEntry(origin Origin, text string) Entry {
	return Entry{Origin: origin, Kind: KindText, Text: text}
}

// ButtonGroupEntry builds a button group entry holding a copy of buttons.
func ButtonGroupEntry(origin Origin, buttons []Button) Entry {
	return Entry{Origin: origin, Kind: KindButtonGroup, Buttons: slices.Clone(buttons)}
}

// Validate reports whether the populated payload agrees with Kind.
func (e Entry) Validate() error {
	switch e.Kind {
	case KindText:
		if len(e.Buttons) > 0 {
			return ErrMixedPayload
		}
		if strings.TrimSpace(e.Text) == "" {
			return ErrEmptyText
		}
	case KindButtonGroup:
		if e.Text != "" {
			return ErrMixedPayload
		}
		if len(e.Buttons) == 0 {
			return ErrEmptyButtons
		}
	default:
		return ErrUnknownKind
	}
	return nil
}

func (e Entry) clone() Entry {
	e.Buttons = slices.Clone(e.Buttons)
	return e
}
