// Package notify surfaces transient success/failure messages to the user.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/podlift/podlift/internal/logging"
)

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notification is one toast-style message.
type Notification struct {
	ID      string
	Level   Level
	Message string
	At      time.Time
}

// Notifier receives user-facing messages. Implementations must be safe for
// concurrent use.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// Queue is a bounded in-memory Notifier. Oldest notifications are dropped
// when the queue is full; the CLI drains it between prompts.
type Queue struct {
	mu    sync.Mutex
	max   int
	items []Notification
}

func NewQueue(max int) *Queue {
	if max <= 0 {
		max = 16
	}
	return &Queue{max: max}
}

func (q *Queue) Success(msg string) { q.push(LevelSuccess, msg) }
func (q *Queue) Error(msg string)   { q.push(LevelError, msg) }
func (q *Queue) Info(msg string)    { q.push(LevelInfo, msg) }

func (q *Queue) push(level Level, msg string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, Notification{
		ID:      uuid.NewString(),
		Level:   level,
		Message: msg,
		At:      time.Now(),
	})
	if len(q.items) > q.max {
		q.items = q.items[len(q.items)-q.max:]
	}
}

// Drain returns all pending notifications and empties the queue.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := q.items
	q.items = nil
	return items
}

// LogNotifier forwards notifications to a structured logger.
type LogNotifier struct {
	log logging.Logger
}

func NewLogNotifier(log logging.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Success(msg string) {
	n.log.Info(context.Background(), msg, "level", LevelSuccess.String())
}

func (n *LogNotifier) Error(msg string) {
	n.log.Error(context.Background(), msg, "level", LevelError.String())
}

func (n *LogNotifier) Info(msg string) {
	n.log.Info(context.Background(), msg, "level", LevelInfo.String())
}
