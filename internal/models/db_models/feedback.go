package db_models

import "time"

// LedgerTimeLayout is ISO-8601 at second precision, always UTC.
const LedgerTimeLayout = "2006-01-02T15:04:05Z"

// LedgerRow is one feedback row: (timestamp, city, rating, comment).
// Rating and comment are updated in place; SubmittedAt never changes after creation.
type LedgerRow struct {
	BaseModel
	SubmittedAt time.Time `gorm:"not null;index" json:"submitted_at"`
	City        string    `gorm:"type:text;not null" json:"city"`
	Rating      int       `gorm:"type:int;not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment     string    `gorm:"type:text;not null;default:''" json:"comment"`

	// Handle is the ledger reference of the row; filled on reads, not stored.
	Handle string `gorm:"-" json:"handle,omitempty"`
}

func (LedgerRow) TableName() string {
	return "feedback_ledger"
}

func FormatLedgerTime(t time.Time) string {
	return t.UTC().Format(LedgerTimeLayout)
}
