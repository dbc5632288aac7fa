// Package repo owns the authoritative in-memory diary collections and their
// write-through persistence.
package repo

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/TKJapan/diet-mvp/internal/domain"
)

// Diary is the single owner of the weight and meal collections. Every
// mutation persists before observers fire; reads return copies of the latest
// completed state and never block on persistence. Mutations are meant to be
// issued one at a time from a single control flow; overlapping mutations may
// interleave their store writes.
type Diary struct {
	store domain.Store

	mu        sync.Mutex
	weights   []domain.WeightEntry
	meals     []domain.MealEntry
	remindAM  *domain.ReminderTime
	remindPM  *domain.ReminderTime
	observers map[string]func()
}

// Open loads the persisted state into a new Diary. Corrupt entry records are
// skipped and logged rather than failing startup; a malformed reminder string
// degrades to unset.
func Open(ctx context.Context, store domain.Store) (*Diary, error) {
	state, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}

	d := &Diary{store: store, observers: make(map[string]func())}
	for _, rec := range state.Weights {
		e, err := domain.ParseWeightRecord(rec)
		if err != nil {
			log.Printf("diary: skipping corrupt weight record: %v", err)
			continue
		}
		d.weights = append(d.weights, e)
	}
	for _, rec := range state.Meals {
		e, err := domain.ParseMealRecord(rec)
		if err != nil {
			log.Printf("diary: skipping corrupt meal record: %v", err)
			continue
		}
		d.meals = append(d.meals, e)
	}
	sortWeights(d.weights)
	sortMeals(d.meals)
	d.remindAM = parseStoredReminder(state.RemindAM, domain.ReminderAM)
	d.remindPM = parseStoredReminder(state.RemindPM, domain.ReminderPM)
	return d, nil
}

func parseStoredReminder(raw string, slot domain.ReminderSlot) *domain.ReminderTime {
	if raw == "" {
		return nil
	}
	t, err := domain.ParseReminderTime(raw)
	if err != nil {
		log.Printf("diary: ignoring malformed %s reminder %q: %v", slot, raw, err)
		return nil
	}
	return &t
}

// Stable sorts keep insertion order for entries sharing a timestamp.
func sortWeights(ws []domain.WeightEntry) {
	sort.SliceStable(ws, func(i, j int) bool { return ws[i].Timestamp.Before(ws[j].Timestamp) })
}

func sortMeals(ms []domain.MealEntry) {
	sort.SliceStable(ms, func(i, j int) bool { return ms[i].Timestamp.Before(ms[j].Timestamp) })
}

// AddWeight appends a weight entry, re-sorts by timestamp, and persists the
// full collection. On a storage failure the in-memory collection is left
// unchanged and the error is returned to the caller; there are no retries.
func (d *Diary) AddWeight(ctx context.Context, e domain.WeightEntry) error {
	d.mu.Lock()
	next := make([]domain.WeightEntry, len(d.weights), len(d.weights)+1)
	copy(next, d.weights)
	d.mu.Unlock()

	next = append(next, e)
	sortWeights(next)
	records, err := weightRecords(next)
	if err != nil {
		return err
	}
	if err := d.store.SaveWeights(ctx, records); err != nil {
		return err
	}

	d.mu.Lock()
	d.weights = next
	d.mu.Unlock()
	d.notify()
	return nil
}

// AddMeal is the meal counterpart of AddWeight.
func (d *Diary) AddMeal(ctx context.Context, e domain.MealEntry) error {
	d.mu.Lock()
	next := make([]domain.MealEntry, len(d.meals), len(d.meals)+1)
	copy(next, d.meals)
	d.mu.Unlock()

	next = append(next, e)
	sortMeals(next)
	records, err := mealRecords(next)
	if err != nil {
		return err
	}
	if err := d.store.SaveMeals(ctx, records); err != nil {
		return err
	}

	d.mu.Lock()
	d.meals = next
	d.mu.Unlock()
	d.notify()
	return nil
}

// ClearAll empties both collections and erases their persisted keys. Reminder
// preferences are untouched. Calling it on an empty diary is a no-op that
// still notifies.
func (d *Diary) ClearAll(ctx context.Context) error {
	if err := d.store.SaveWeights(ctx, nil); err != nil {
		return err
	}
	if err := d.store.SaveMeals(ctx, nil); err != nil {
		return err
	}

	d.mu.Lock()
	d.weights = nil
	d.meals = nil
	d.mu.Unlock()
	d.notify()
	return nil
}

// SetReminder updates one reminder slot, leaving the other unchanged. A nil
// time clears the slot.
func (d *Diary) SetReminder(ctx context.Context, slot domain.ReminderSlot, t *domain.ReminderTime) error {
	if !slot.Valid() {
		return &domain.ValidationError{Field: "slot", Reason: `must be "am" or "pm"`}
	}

	value := ""
	var cp *domain.ReminderTime
	if t != nil {
		c := *t
		cp = &c
		value = t.String()
	}
	if err := d.store.SaveReminder(ctx, slot, value); err != nil {
		return err
	}

	d.mu.Lock()
	if slot == domain.ReminderAM {
		d.remindAM = cp
	} else {
		d.remindPM = cp
	}
	d.mu.Unlock()
	d.notify()
	return nil
}

// Weights returns a copy of the current weight collection, sorted ascending
// by timestamp.
func (d *Diary) Weights() []domain.WeightEntry {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.WeightEntry, len(d.weights))
	copy(out, d.weights)
	return out
}

// Meals returns a copy of the current meal collection, sorted ascending by
// timestamp.
func (d *Diary) Meals() []domain.MealEntry {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.MealEntry, len(d.meals))
	copy(out, d.meals)
	return out
}

// Reminder returns the current preference for the slot, nil when unset.
func (d *Diary) Reminder(slot domain.ReminderSlot) *domain.ReminderTime {
	d.mu.Lock()
	defer d.mu.Unlock()
	var t *domain.ReminderTime
	if slot == domain.ReminderAM {
		t = d.remindAM
	} else {
		t = d.remindPM
	}
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// Subscribe registers fn to run synchronously after each successful mutation
// and returns an unsubscribe token. Invocation order across subscribers is
// unspecified.
func (d *Diary) Subscribe(fn func()) string {
	token := uuid.NewString()
	d.mu.Lock()
	d.observers[token] = fn
	d.mu.Unlock()
	return token
}

// Unsubscribe removes a previously registered observer. Unknown tokens are
// ignored.
func (d *Diary) Unsubscribe(token string) {
	d.mu.Lock()
	delete(d.observers, token)
	d.mu.Unlock()
}

// notify fans out to observers outside the lock so a subscriber may read the
// diary from its callback.
func (d *Diary) notify() {
	d.mu.Lock()
	fns := make([]func(), 0, len(d.observers))
	for _, fn := range d.observers {
		fns = append(fns, fn)
	}
	d.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func weightRecords(ws []domain.WeightEntry) ([]string, error) {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		rec, err := w.Record()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func mealRecords(ms []domain.MealEntry) ([]string, error) {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		rec, err := m.Record()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
