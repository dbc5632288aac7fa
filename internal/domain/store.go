package domain

import "context"

// Logical persisted keys, shared by every store implementation.
const (
	KeyWeights  = "weights_v1"
	KeyMeals    = "meals_v1"
	KeyRemindAM = "remind_am"
	KeyRemindPM = "remind_pm"
)

// StoreState is the whole persisted diary state read once at startup.
// Reminder values carry the raw "H:MM" strings; empty means unset.
type StoreState struct {
	Weights  []string
	Meals    []string
	RemindAM string
	RemindPM string
}

// Store is the port for durable persistence of the diary. SaveWeights and
// SaveMeals replace the whole stored list for their key; implementations must
// make that replacement atomic so a failed write leaves the previous list
// intact. Failures surface as *StorageError.
type Store interface {
	Load(ctx context.Context) (*StoreState, error)
	SaveWeights(ctx context.Context, records []string) error
	SaveMeals(ctx context.Context, records []string) error
	SaveReminder(ctx context.Context, slot ReminderSlot, value string) error
	Close() error
}
