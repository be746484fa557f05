package customer

import "time"

// CustomerRecord is a durable record of a buyer's contact details, written
// after the payment widget reports success. Records are never mutated or
// deleted, and nothing dedupes them: a buyer who submits twice is stored
// twice.
type CustomerRecord struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile"`
	CreatedAt time.Time `json:"createdAt"`
}
