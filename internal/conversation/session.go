package conversation

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"travelchat/internal/log"
	"travelchat/internal/webhook"
)

const (
	// NoConfidentReply replaces a reply that produced no entries.
	NoConfidentReply = "I'm not sure how to respond to that."
	// ConnectionTrouble replaces a failed exchange.
	ConnectionTrouble = "Sorry, I'm having trouble connecting right now. Please try again later."
)

// Transport sends one turn and returns the raw reply. *webhook.Client
// satisfies it.
type Transport interface {
	Send(ctx context.Context, turn webhook.Turn) (webhook.Reply, error)
}

// TurnKind records what started a turn.
type TurnKind int

const (
	TurnTyped TurnKind = iota
	TurnButton
)

func (k TurnKind) String() string {
	if k == TurnButton {
		return "button"
	}
	return "typed"
}

// Outcome is how a turn resolved.
type Outcome int

const (
	OutcomeReply Outcome = iota
	OutcomeEmpty
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReply:
		return "reply"
	case OutcomeEmpty:
		return "empty"
	default:
		return "failure"
	}
}

// Controller is the single owner of a session's log and awaiting flag. At
// most one turn is outstanding at a time.
type Controller struct {
	transport Transport
	senderID  string
	sessionID string
	now       func() time.Time
	logger    zerolog.Logger

	mu        sync.Mutex
	entries   []Entry
	awaiting  bool
	turns     int
	observers map[int]Observer
	nextObs   int
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the time source used to stamp entries.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// NewController returns an idle controller with an empty log. senderID is
// sent with every turn and never changes.
func NewController(transport Transport, senderID string, opts ...Option) *Controller {
	c := &Controller{
		transport: transport,
		senderID:  senderID,
		sessionID: uuid.Must(uuid.NewV7()).String(),
		now:       time.Now,
		observers: map[int]Observer{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = log.WithComponent("conversation").With().
		Str(log.FieldSessionID, c.sessionID).
		Str(log.FieldSenderID, senderID).
		Logger()
	return c
}

// SessionID identifies this controller in logs.
func (c *Controller) SessionID() string {
	return c.sessionID
}

// SenderID is the id sent upstream with every turn.
func (c *Controller) SenderID() string {
	return c.senderID
}

// Subscribe registers o and returns a function that removes it.
func (c *Controller) Subscribe(o Observer) func() {
	c.mu.Lock()
	id := c.nextObs
	c.nextObs++
	c.observers[id] = o
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Entries returns a copy of the log.
func (c *Controller) Entries() []Entry {
	return c.Snapshot().Entries
}

// AwaitingReply reports whether a turn is outstanding.
func (c *Controller) AwaitingReply() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.awaiting
}

// SubmitTyped runs a full turn for typed text. It returns false without
// touching the log when the trimmed text is empty or a turn is outstanding.
func (c *Controller) SubmitTyped(ctx context.Context, text string) bool {
	turn := c.BeginTyped(text)
	if turn == nil {
		return false
	}
	turn.Run(ctx)
	return true
}

// SelectButton runs a full turn for a chosen button. The label is logged as
// the user's entry and the payload is what gets sent.
func (c *Controller) SelectButton(ctx context.Context, label, payload string) bool {
	turn := c.BeginButton(label, payload)
	if turn == nil {
		return false
	}
	turn.Run(ctx)
	return true
}

// BeginTyped appends the trimmed text as a user entry, raises the awaiting
// flag and returns the turn to run. It returns nil for blank text or while
// another turn is outstanding.
func (c *Controller) BeginTyped(text string) *Turn {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	return c.begin(TurnTyped, trimmed, trimmed)
}

// BeginButton is BeginTyped for a button choice. A blank label falls back to
// the payload; a blank payload has nothing to send and yields nil.
func (c *Controller) BeginButton(label, payload string) *Turn {
	if strings.TrimSpace(payload) == "" {
		return nil
	}
	display := label
	if strings.TrimSpace(display) == "" {
		display = payload
	}
	return c.begin(TurnButton, display, payload)
}

func (c *Controller) begin(kind TurnKind, display, message string) *Turn {
	c.mu.Lock()
	if c.awaiting {
		c.mu.Unlock()
		c.logger.Debug().Str(log.FieldTurnKind, kind.String()).Msg("turn refused, reply outstanding")
		return nil
	}
	c.appendLocked(TextEntry(OriginUser, display))
	c.awaiting = true
	c.turns++
	snap := c.snapshotLocked()
	observers := c.observersLocked()
	c.mu.Unlock()

	turn := &Turn{
		c:       c,
		id:      uuid.Must(uuid.NewV7()).String(),
		kind:    kind,
		message: message,
	}
	c.logger.Info().
		Str(log.FieldTurnID, turn.id).
		Str(log.FieldTurnKind, kind.String()).
		Int("message_len", len(message)).
		Msg("turn started")
	notify(observers, snap)
	return turn
}

// finish appends the turn's assistant entries as one batch and clears the
// awaiting flag in the same critical section.
func (c *Controller) finish(entries []Entry) {
	c.mu.Lock()
	for _, e := range entries {
		c.appendLocked(e)
	}
	c.awaiting = false
	snap := c.snapshotLocked()
	observers := c.observersLocked()
	c.mu.Unlock()

	notify(observers, snap)
}

func (c *Controller) appendLocked(e Entry) {
	e = e.clone()
	e.ID = uuid.Must(uuid.NewV7()).String()
	e.CreatedAt = c.now()
	c.entries = append(c.entries, e)
}

func (c *Controller) snapshotLocked() Snapshot {
	entries := make([]Entry, len(c.entries))
	for i, e := range c.entries {
		entries[i] = e.clone()
	}
	return Snapshot{Entries: entries, AwaitingReply: c.awaiting, Turns: c.turns}
}

func (c *Controller) observersLocked() []Observer {
	if len(c.observers) == 0 {
		return nil
	}
	ids := make([]int, 0, len(c.observers))
	for id := range c.observers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]Observer, len(ids))
	for i, id := range ids {
		out[i] = c.observers[id]
	}
	return out
}

func notify(observers []Observer, snap Snapshot) {
	for _, o := range observers {
		o.OnChange(snap)
	}
}

// Turn is one outstanding request/reply cycle created by BeginTyped or
// BeginButton.
type Turn struct {
	c       *Controller
	id      string
	kind    TurnKind
	message string

	once    sync.Once
	outcome Outcome
}

// ID identifies the turn in logs.
func (t *Turn) ID() string { return t.id }

// Kind reports what started the turn.
func (t *Turn) Kind() TurnKind { return t.kind }

// Message is the text sent upstream.
func (t *Turn) Message() string { return t.message }

// Run performs the exchange and appends the result. Failures become a single
// assistant entry; nothing is returned as an error. The awaiting flag is
// cleared even if the transport panics. Calling Run again returns the first
// outcome without another request.
func (t *Turn) Run(ctx context.Context) Outcome {
	t.once.Do(func() { t.outcome = t.run(ctx) })
	return t.outcome
}

func (t *Turn) run(ctx context.Context) (outcome Outcome) {
	start := time.Now()
	entries := []Entry{TextEntry(OriginAssistant, ConnectionTrouble)}
	outcome = OutcomeFailure
	defer func() {
		t.c.finish(entries)
		observeTurn(t.kind, outcome)
		t.c.logger.Info().
			Str(log.FieldTurnID, t.id).
			Str(log.FieldOutcome, outcome.String()).
			Int(log.FieldEntries, len(entries)).
			Int64(log.FieldDurationMS, time.Since(start).Milliseconds()).
			Msg("turn finished")
	}()

	reply, err := t.c.transport.Send(ctx, webhook.Turn{Sender: t.c.senderID, Message: t.message})
	if err != nil {
		t.c.logger.Warn().
			Err(err).
			Str(log.FieldTurnID, t.id).
			Str(log.FieldReason, string(webhook.ReasonOf(err))).
			Msg("exchange failed, substituting connection notice")
		return OutcomeFailure
	}
	normalized := Normalize(reply)
	if len(normalized) == 0 {
		entries = []Entry{TextEntry(OriginAssistant, NoConfidentReply)}
		return OutcomeEmpty
	}
	entries = normalized
	return OutcomeReply
}
