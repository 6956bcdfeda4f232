package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// AuditEventType names one step of a session. Each type maps to a fact
// predicate in the audit file.
type AuditEventType string

const (
	// Session events -> session_event/3
	AuditSessionStart AuditEventType = "session_start"
	AuditSessionEnd   AuditEventType = "session_end"

	// Wizard transitions -> stage_event/4
	AuditStageAdvance AuditEventType = "stage_advance"
	AuditStageRetreat AuditEventType = "stage_retreat"
	AuditStartOver    AuditEventType = "start_over"

	// journey_complete/4
	AuditJourneyComplete AuditEventType = "journey_complete"

	// Outbound work -> outbound_event/5
	AuditSuggest AuditEventType = "suggest"
	AuditShare   AuditEventType = "share"
)

// AuditEvent is one line of the audit file.
type AuditEvent struct {
	Timestamp int64          `json:"ts"`
	EventType AuditEventType `json:"event"`
	SessionID string         `json:"session"`
	Stage     string         `json:"stage,omitempty"`
	Target    string         `json:"target,omitempty"`
	Success   bool           `json:"success"`
	Error     string         `json:"error,omitempty"`
	Count     int            `json:"count,omitempty"`
	Fact      string         `json:"fact"`
}

var (
	auditFile *os.File
	auditMu   sync.Mutex
)

// AuditLogger stamps events with a session id.
type AuditLogger struct {
	sessionID string
}

// InitAudit opens the day's audit file. It is a no-op outside debug mode
// or when the wizard category is switched off.
func InitAudit() error {
	if !IsCategoryEnabled(CategoryWizard) || logsDir == "" {
		return nil
	}

	auditMu.Lock()
	defer auditMu.Unlock()

	if auditFile != nil {
		return nil
	}

	date := time.Now().Format("2006-01-02")
	auditPath := filepath.Join(logsDir, fmt.Sprintf("%s_audit.log", date))

	file, err := os.OpenFile(auditPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	auditFile = file
	return nil
}

// CloseAudit closes the audit log file.
func CloseAudit() {
	auditMu.Lock()
	defer auditMu.Unlock()

	if auditFile != nil {
		auditFile.Close()
		auditFile = nil
	}
}

// AuditWithSession returns a logger scoped to one wheel session.
func AuditWithSession(sessionID string) *AuditLogger {
	return &AuditLogger{sessionID: sessionID}
}

// Log writes an audit event. A nil logger drops it.
func (a *AuditLogger) Log(event AuditEvent) {
	if a == nil {
		return
	}

	auditMu.Lock()
	defer auditMu.Unlock()
	if auditFile == nil {
		return
	}

	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixMilli()
	}
	if event.SessionID == "" {
		event.SessionID = a.sessionID
	}
	event.Fact = factFor(event)

	data, err := json.Marshal(event)
	if err == nil {
		auditFile.Write(append(data, '\n'))
	}
}

// factFor renders the event as a single Datalog-style fact.
func factFor(e AuditEvent) string {
	switch e.EventType {
	case AuditSessionStart, AuditSessionEnd:
		return fmt.Sprintf("session_event(%d, /%s, \"%s\").",
			e.Timestamp, e.EventType, e.SessionID)

	case AuditStageAdvance, AuditStageRetreat, AuditStartOver:
		return fmt.Sprintf("stage_event(%d, /%s, \"%s\", /%s).",
			e.Timestamp, e.EventType, e.SessionID, e.Stage)

	case AuditJourneyComplete:
		return fmt.Sprintf("journey_complete(%d, \"%s\", \"%s\", %d).",
			e.Timestamp, e.SessionID, escapeString(e.Target), e.Count)

	case AuditSuggest, AuditShare:
		return fmt.Sprintf("outbound_event(%d, /%s, \"%s\", %v, \"%s\").",
			e.Timestamp, e.EventType, e.SessionID, e.Success, escapeString(e.Error))

	default:
		return fmt.Sprintf("audit_event(%d, /%s, \"%s\").",
			e.Timestamp, e.EventType, e.SessionID)
	}
}

func escapeString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/10)

	for _, c := range s {
		switch c {
		case '"':
			b.WriteString("\\\"")
		case '\\':
			b.WriteString("\\\\")
		case '\n':
			b.WriteString("\\n")
		case '\r':
			b.WriteString("\\r")
		case '\t':
			b.WriteString("\\t")
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// SessionStart records a new wheel session.
func (a *AuditLogger) SessionStart() {
	a.Log(AuditEvent{EventType: AuditSessionStart, Success: true})
}

// SessionEnd records the end of a session and how many journeys it finished.
func (a *AuditLogger) SessionEnd(journeys int) {
	a.Log(AuditEvent{EventType: AuditSessionEnd, Success: true, Count: journeys})
}

// Stage records a wizard transition into stage.
func (a *AuditLogger) Stage(eventType AuditEventType, stage string) {
	a.Log(AuditEvent{EventType: eventType, Stage: stage, Success: true})
}

// JourneyComplete records the names of the specific emotions picked.
func (a *AuditLogger) JourneyComplete(tertiary []string) {
	a.Log(AuditEvent{
		EventType: AuditJourneyComplete,
		Target:    strings.Join(tertiary, ","),
		Count:     len(tertiary),
		Success:   true,
	})
}

// Outbound records the result of a suggestion or share request.
func (a *AuditLogger) Outbound(eventType AuditEventType, err error) {
	e := AuditEvent{EventType: eventType, Success: err == nil}
	if err != nil {
		e.Error = err.Error()
	}
	a.Log(e)
}
