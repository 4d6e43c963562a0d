package model

import "time"

// ActivityType classifies a sales touch.
type ActivityType string

const (
	ActivityCall    ActivityType = "call"
	ActivityMeeting ActivityType = "meeting"
	ActivityEmail   ActivityType = "email"
	ActivityDemo    ActivityType = "demo"
)

// ActivityOutcome is the recorded result of an activity.
type ActivityOutcome string

const (
	OutcomePositive ActivityOutcome = "positive"
	OutcomeNeutral  ActivityOutcome = "neutral"
	OutcomeNegative ActivityOutcome = "negative"
)

// ActivityStatus tracks task-style activities. Empty when the activity is a
// plain logged touch rather than a scheduled task.
type ActivityStatus string

const (
	StatusPending   ActivityStatus = "pending"
	StatusCompleted ActivityStatus = "completed"
	StatusOverdue   ActivityStatus = "overdue"
)

// Activity is a single sales touch against a deal. Read-only for aggregation.
type Activity struct {
	ID        string          `json:"id"`
	DealID    string          `json:"dealId"`
	UserID    string          `json:"userId"`
	Type      ActivityType    `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Outcome   ActivityOutcome `json:"outcome"`
	Status    ActivityStatus  `json:"status,omitempty"`
}
