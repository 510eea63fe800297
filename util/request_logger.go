package util

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/campuscare/health-api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RequestEventType represents different types of request/audit events
type RequestEventType string

const (
	EventRegisterSuccess   RequestEventType = "REGISTER_SUCCESS"
	EventLoginSuccess      RequestEventType = "LOGIN_SUCCESS"
	EventLoginFailure      RequestEventType = "LOGIN_FAILURE"
	EventProfileCreated    RequestEventType = "PROFILE_CREATED"
	EventProfileUpdated    RequestEventType = "PROFILE_UPDATED"
	EventRatingCreated     RequestEventType = "RATING_CREATED"
	EventPredictionStored  RequestEventType = "PREDICTION_STORED"
	EventPredictionFailed  RequestEventType = "PREDICTION_FAILED"
	EventRateLimitExceeded RequestEventType = "RATE_LIMIT_EXCEEDED"
	EventEndpointCall      RequestEventType = "ENDPOINT_CALL"
)

// RequestEvent represents a request event to be logged
type RequestEvent struct {
	EventType RequestEventType
	AccountID string
	Email     string
	IP        string
	UserAgent string
	Message   string
	Details   map[string]interface{}
}

var requestLogger *log.Logger
var requestLogDB *gorm.DB

// SetRequestLoggerDB sets a gorm DB instance used by the request logger.
// Call this during application startup (e.g. in main) after DB initialization.
func SetRequestLoggerDB(db *gorm.DB) {
	requestLogDB = db
}

func init() {
	requestLogger = log.New(os.Stdout, "[AUDIT] ", log.LstdFlags|log.Lmsgprefix)
}

// sanitizeLogValue removes newlines and other characters that could break log parsing
func sanitizeLogValue(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\t", " ")
	// Truncate very long values to prevent log flooding
	if len(value) > 200 {
		value = value[:200] + "..."
	}
	return value
}

// LogRequestEvent logs a request event to stdout and, best-effort, to the
// request_logs table. Persistence failures never fail the operation.
func LogRequestEvent(event RequestEvent) {
	// Sanitize all string fields to prevent log injection
	msg := fmt.Sprintf("Event=%s AccountID=%s Email=%s IP=%s UserAgent=%s Message=%s",
		sanitizeLogValue(string(event.EventType)),
		sanitizeLogValue(event.AccountID),
		sanitizeLogValue(event.Email),
		sanitizeLogValue(event.IP),
		sanitizeLogValue(event.UserAgent),
		sanitizeLogValue(event.Message),
	)

	if len(event.Details) > 0 {
		// Don't log the Details map directly to avoid injection
		msg = fmt.Sprintf("%s DetailsCount=%d", msg, len(event.Details))
	}

	requestLogger.Println(msg)

	if requestLogDB == nil {
		return
	}

	var details datatypes.JSON
	if event.Details != nil {
		if b, err := json.Marshal(event.Details); err == nil {
			details = datatypes.JSON(b)
		}
	}

	// Resolve city/country for the IP (best-effort, local DB then cache)
	city, country := GetIPLocation(event.IP)
	var location string
	switch {
	case city != "" && country != "":
		location = fmt.Sprintf("%s/%s", city, country)
	case country != "":
		location = country
	default:
		location = city
	}

	entry := model.RequestLog{
		EventType: string(event.EventType),
		AccountID: event.AccountID,
		Email:     event.Email,
		IP:        event.IP,
		Location:  location,
		UserAgent: event.UserAgent,
		Message:   event.Message,
		Details:   details,
	}
	if err := requestLogDB.Create(&entry).Error; err != nil {
		requestLogger.Printf("failed to persist request log: %v", err)
	}
}

// LogLoginFailure records a failed credential check.
func LogLoginFailure(username, ip, userAgent, reason string) {
	LogRequestEvent(RequestEvent{
		EventType: EventLoginFailure,
		Email:     username,
		IP:        ip,
		UserAgent: userAgent,
		Message:   reason,
	})
}

// LogRateLimitExceeded records a rejected request on a rate-limited route.
func LogRateLimitExceeded(accountID, ip, endpoint string) {
	LogRequestEvent(RequestEvent{
		EventType: EventRateLimitExceeded,
		AccountID: accountID,
		IP:        ip,
		Message:   fmt.Sprintf("rate limit exceeded on %s", endpoint),
	})
}
