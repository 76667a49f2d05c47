package chat

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/Tanya2303/Edvora/pkg/core"
	"github.com/Tanya2303/Edvora/pkg/query"
)

// Sender identifies who wrote a Message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Message is one transcript entry.
type Message struct {
	Seq    uint64    `json:"seq"`
	Sender Sender    `json:"sender"`
	Text   string    `json:"text"`
	Intent Intent    `json:"intent,omitempty"`
	At     time.Time `json:"at"`

	// ReplyTo is the Seq of the user message an AI reply answers.
	ReplyTo uint64 `json:"reply_to,omitempty"`
}

// Snapshotter supplies the current reminder collection.
type Snapshotter interface {
	Snapshot() []core.Reminder
}

// headsUpCount is how many upcoming reminders the heads-up message names.
const headsUpCount = 3

// DefaultMaxHistory bounds the transcript.
const DefaultMaxHistory = 200

// Companion holds a running conversation over a reminder collection.
// Ask may be called concurrently; each reply is computed from the collection
// as it is when the thinking delay ends, and replies are appended in
// completion order, so they can interleave with their requests.
type Companion struct {
	source     Snapshotter
	dispatcher *Dispatcher
	userName   string
	minDelay   time.Duration
	maxDelay   time.Duration
	maxHistory int
	now        func() time.Time
	pick       func(n int) int
	logger     *slog.Logger

	mu         sync.Mutex
	seq        uint64
	transcript []Message
}

// CompanionOption configures a Companion.
type CompanionOption func(*Companion)

// WithUserName sets the name used in greetings.
func WithUserName(name string) CompanionOption {
	return func(c *Companion) { c.userName = strings.TrimSpace(name) }
}

// WithDelay sets the simulated thinking time range. Zero disables it.
func WithDelay(lo, hi time.Duration) CompanionOption {
	return func(c *Companion) {
		if lo < 0 {
			lo = 0
		}
		if hi < lo {
			hi = lo
		}
		c.minDelay, c.maxDelay = lo, hi
	}
}

// WithMaxHistory bounds the transcript; the oldest messages are dropped.
func WithMaxHistory(n int) CompanionOption {
	return func(c *Companion) {
		if n > 0 {
			c.maxHistory = n
		}
	}
}

// WithDispatcher replaces the intent dispatcher.
func WithDispatcher(d *Dispatcher) CompanionOption {
	return func(c *Companion) {
		if d != nil {
			c.dispatcher = d
		}
	}
}

// WithCompanionClock overrides the wall clock.
func WithCompanionClock(now func() time.Time) CompanionOption {
	return func(c *Companion) {
		if now != nil {
			c.now = now
		}
	}
}

// WithPicker makes random choices deterministic.
func WithPicker(pick func(n int) int) CompanionOption {
	return func(c *Companion) {
		if pick != nil {
			c.pick = pick
		}
	}
}

// WithCompanionLogger sets the logger.
func WithCompanionLogger(logger *slog.Logger) CompanionOption {
	return func(c *Companion) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCompanion creates a Companion reading reminders from source.
// The default thinking delay is one to three seconds.
func NewCompanion(source Snapshotter, opts ...CompanionOption) *Companion {
	c := &Companion{
		source:     source,
		dispatcher: NewDispatcher(),
		minDelay:   time.Second,
		maxDelay:   3 * time.Second,
		maxHistory: DefaultMaxHistory,
		now:        time.Now,
		pick:       rand.IntN,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Companion) replyContext() Context {
	ctx := NewContext(c.userName, c.source.Snapshot(), c.now())
	ctx.Pick = c.pick
	return ctx
}

// Start opens the conversation: it appends the welcome message and, when
// reminders are pending, a heads-up naming the first few. It returns the
// messages it appended.
func (c *Companion) Start() []Message {
	name := c.userName
	if name == "" {
		name = "there"
	}
	out := []Message{c.append(Message{Sender: SenderAI, Text: fmt.Sprintf(welcomeText, name)})}
	if text, ok := c.headsUp(); ok {
		out = append(out, c.append(Message{Sender: SenderAI, Text: text}))
	}
	return out
}

func (c *Companion) headsUp() (string, bool) {
	upcoming := query.Upcoming(c.source.Snapshot(), headsUpCount)
	if len(upcoming) == 0 {
		return "", false
	}
	titles := make([]string, 0, len(upcoming))
	for _, r := range upcoming {
		titles = append(titles, r.Title)
	}
	noun := "reminder"
	if len(upcoming) > 1 {
		noun = "reminders"
	}
	return fmt.Sprintf(headsUpText, len(upcoming), noun, strings.Join(titles, ", ")), true
}

// Ask records the user's message, waits the thinking delay and appends the
// reply. Blank input is ignored and returns a zero Message. If ctx ends
// during the delay no reply is recorded.
func (c *Companion) Ask(ctx context.Context, text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, nil
	}
	req := c.append(Message{Sender: SenderUser, Text: text})

	if d := c.delay(); d > 0 {
		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Message{}, ctx.Err()
		case <-timer.C:
		}
	}

	intent, reply := c.respond(text)
	return c.append(Message{Sender: SenderAI, Text: reply, Intent: intent, ReplyTo: req.Seq}), nil
}

func (c *Companion) respond(text string) (intent Intent, reply string) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("reply failed", "panic", r)
			intent, reply = IntentFallback, troubleText
		}
	}()
	intent, reply = c.dispatcher.Respond(text, c.replyContext())
	c.logger.Debug("reply", "intent", intent)
	return intent, reply
}

func (c *Companion) delay() time.Duration {
	if c.maxDelay <= 0 {
		return 0
	}
	span := c.maxDelay - c.minDelay
	if span <= 0 {
		return c.minDelay
	}
	return c.minDelay + time.Duration(c.pick(int(span/time.Millisecond)+1))*time.Millisecond
}

func (c *Companion) append(m Message) Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	m.Seq = c.seq
	m.At = c.now()
	c.transcript = append(c.transcript, m)
	if over := len(c.transcript) - c.maxHistory; over > 0 {
		c.transcript = append(c.transcript[:0:0], c.transcript[over:]...)
	}
	return m
}

// Transcript returns a copy of the conversation so far.
func (c *Companion) Transcript() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Message, len(c.transcript))
	copy(out, c.transcript)
	return out
}

// Clear empties the transcript. Sequence numbers keep increasing.
func (c *Companion) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transcript = nil
}
