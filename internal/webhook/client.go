package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"travelchat/internal/log"
)

const (
	// Path is the REST channel route on the dialogue server.
	Path = "/webhooks/rest/webhook"
	// Timeout bounds every exchange, connect to last body byte.
	Timeout = 5 * time.Second

	maxBodyBytes  = 1 << 20
	maxErrorChars = 240
)

// Client posts turns to one dialogue server. It never retries.
type Client struct {
	endpoint string
	http     *http.Client
	logger   zerolog.Logger
}

// New returns a client for the server rooted at base, e.g.
// "http://localhost:5005".
func New(base string) *Client {
	return &Client{
		endpoint: strings.TrimRight(strings.TrimSpace(base), "/") + Path,
		http: &http.Client{
			Timeout:   Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: log.WithComponent("webhook"),
	}
}

// Endpoint returns the full webhook URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send performs exactly one POST for turn. Every failure, including an empty
// message, is returned as an *Error wrapping ErrTransport.
func (c *Client) Send(ctx context.Context, turn Turn) (Reply, error) {
	start := time.Now()
	reply, err := c.send(ctx, turn)
	elapsed := time.Since(start)
	observeExchange(err, elapsed, len(reply))

	evt := c.logger.Debug()
	if err != nil {
		evt = c.logger.Warn().Err(err).Str(log.FieldReason, string(ReasonOf(err)))
	}
	evt.Int64(log.FieldDurationMS, elapsed.Milliseconds()).
		Int("messages", len(reply)).
		Msg("webhook exchange finished")
	return reply, err
}

func (c *Client) send(ctx context.Context, turn Turn) (Reply, error) {
	if strings.TrimSpace(turn.Message) == "" {
		return nil, &Error{Op: "send", Reason: ReasonInvalidRequest, Err: errors.New("empty message")}
	}
	buf, err := json.Marshal(turn)
	if err != nil {
		return nil, &Error{Op: "encode", Reason: ReasonInvalidRequest, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(buf))
	if err != nil {
		return nil, &Error{Op: "request", Reason: ReasonInvalidRequest, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Op: "post", Reason: classifyDoError(err), Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{Op: "read", Reason: classifyDoError(err), Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{
			Op:     "post",
			Reason: ReasonStatus,
			Status: resp.StatusCode,
			Body:   compactSingleLine(string(payload), maxErrorChars),
		}
	}
	return decodeReply(payload)
}

// decodeReply accepts a JSON array of messages. An empty body or JSON null
// decodes to an empty reply.
func decodeReply(payload []byte) (Reply, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return Reply{}, nil
	}
	var reply Reply
	if err := json.Unmarshal(trimmed, &reply); err != nil {
		return nil, &Error{
			Op:     "decode",
			Reason: ReasonDecode,
			Body:   compactSingleLine(string(trimmed), maxErrorChars),
			Err:    err,
		}
	}
	if reply == nil {
		reply = Reply{}
	}
	return reply, nil
}

func classifyDoError(err error) Reason {
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return ReasonTimeout
	}
	return ReasonNetwork
}

func compactSingleLine(text string, limit int) string {
	single := strings.Join(strings.Fields(text), " ")
	if limit <= 0 || len(single) <= limit {
		return single
	}
	return fmt.Sprintf("%s...", single[:limit])
}
