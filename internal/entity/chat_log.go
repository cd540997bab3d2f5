package entity

import "time"

// ChatLog records how a message was answered. The message text itself is
// never stored.
type ChatLog struct {
	ID            string    `db:"id"`
	RequestID     string    `db:"request_id"`
	Intent        string    `db:"intent"`
	Method        string    `db:"method"`
	UsedFuzzy     bool      `db:"used_fuzzy"`
	Confidence    *int      `db:"confidence"`
	MessageLength int       `db:"message_length"`
	CreatedAt     time.Time `db:"created_at"`
}

type IntentCount struct {
	Intent string `db:"intent"`
	Count  int    `db:"count"`
}
