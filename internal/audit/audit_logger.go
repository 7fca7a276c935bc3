package audit

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	EventCardCreated  = "CASHCARD_CREATED"
	EventCardUpdated  = "CASHCARD_UPDATED"
	EventCardDeleted  = "CASHCARD_DELETED"
	EventAccessDenied = "ACCESS_DENIED"
	EventTokenIssued  = "TOKEN_ISSUED"
	EventTokenRevoked = "TOKEN_REVOKED"
)

type AuditEvent struct {
	Timestamp time.Time `json:"timestamp"`
	EventType string    `json:"event_type"`
	Username  string    `json:"username"`
	CardID    int64     `json:"card_id,omitempty"`
	Status    string    `json:"status"`
	Details   any       `json:"details,omitempty"`
}

// Logger writes one structured line per audited event.
type Logger interface {
	LogCard(eventType, username string, cardID int64)
	LogDenied(username, path, reason string)
	LogOperation(eventType, username, details string)
}

type AuditLogger struct {
	log zerolog.Logger
}

func NewAuditLogger(log zerolog.Logger) *AuditLogger {
	return &AuditLogger{log: log.With().Str("component", "audit").Logger()}
}

func (a *AuditLogger) LogCard(eventType, username string, cardID int64) {
	a.write(AuditEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		Username:  username,
		CardID:    cardID,
		Status:    "SUCCESS",
	})
}

func (a *AuditLogger) LogDenied(username, path, reason string) {
	a.write(AuditEvent{
		Timestamp: time.Now(),
		EventType: EventAccessDenied,
		Username:  username,
		Status:    "DENIED",
		Details:   map[string]string{"path": path, "reason": reason},
	})
}

func (a *AuditLogger) LogOperation(eventType, username, details string) {
	a.write(AuditEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		Username:  username,
		Status:    "SUCCESS",
		Details:   map[string]string{"details": details},
	})
}

func (a *AuditLogger) write(event AuditEvent) {
	a.log.Info().
		Time("at", event.Timestamp).
		Str("event_type", event.EventType).
		Str("username", event.Username).
		Int64("card_id", event.CardID).
		Str("status", event.Status).
		Interface("details", event.Details).
		Msg("AUDIT")
}

// Nop discards every event.
type Nop struct{}

func (Nop) LogCard(string, string, int64) {}
func (Nop) LogDenied(string, string, string) {}
func (Nop) LogOperation(string, string, string) {}
