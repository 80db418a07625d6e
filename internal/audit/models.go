package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditEntry is the persisted form of an Event
type AuditEntry struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Kind            Kind      `json:"kind" gorm:"type:varchar(50);not null;index"`
	SessionID       string    `json:"sessionId" gorm:"type:varchar(64);index"`
	UserID          string    `json:"userId" gorm:"type:varchar(64)"`
	BookingID       string    `json:"bookingId" gorm:"type:varchar(64);index"`
	FlightID        string    `json:"flightId" gorm:"type:varchar(64)"`
	PassengerID     string    `json:"passengerId" gorm:"type:varchar(64)"`
	PaymentIntentID string    `json:"paymentIntentId" gorm:"type:varchar(128)"`
	Detail          string    `json:"detail" gorm:"type:text"`
	OccurredAt      time.Time `json:"occurredAt" gorm:"not null;index"`
	CreatedAt       time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (AuditEntry) TableName() string {
	return "audit_entries"
}

func (e *AuditEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func entryFromEvent(e Event) *AuditEntry {
	occurred := e.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}
	return &AuditEntry{
		ID:              uuid.New(),
		Kind:            e.Kind,
		SessionID:       e.SessionID,
		UserID:          e.UserID,
		BookingID:       e.BookingID,
		FlightID:        e.FlightID,
		PassengerID:     e.PassengerID,
		PaymentIntentID: e.PaymentIntentID,
		Detail:          e.Detail,
		OccurredAt:      occurred,
	}
}
