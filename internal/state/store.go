// Package state holds the in-memory planner state and the operations that
// mutate it. A Store is the only owner of truth during a session; every
// successful mutation is mirrored to its Saver before the call returns.
package state

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/theirongolddev/deskpad/internal/metrics"
	"github.com/theirongolddev/deskpad/internal/model"

	"go.uber.org/zap"
)

var (
	// ErrEmptyInput is returned when a required name or text is blank.
	ErrEmptyInput = errors.New("input is empty")
	// ErrIndexOutOfRange is returned when a subject, goal or habit index
	// does not address an existing record.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidAmount is returned when an expense amount is not a finite number.
	ErrInvalidAmount = errors.New("invalid amount")
)

// Saver persists a full snapshot. store.Bridge implements it.
type Saver interface {
	Save(ctx context.Context, snap model.Snapshot) error
}

// Store owns the subjects, expenses and habits collections.
type Store struct {
	mu    sync.Mutex
	snap  model.Snapshot
	saver Saver
	log   *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for mutation and save diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns a store seeded with initial. A nil saver keeps the store
// purely in memory.
func New(initial model.Snapshot, saver Saver, opts ...Option) *Store {
	snap := initial.Clone()
	snap.Normalize()
	s := &Store{
		snap:  snap,
		saver: saver,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// Subjects returns a copy of the subjects collection.
func (s *Store) Subjects() []model.Subject {
	return s.Snapshot().Subjects
}

// Expenses returns a copy of the expenses collection.
func (s *Store) Expenses() []model.Expense {
	return s.Snapshot().Expenses
}

// Habits returns a copy of the habits collection.
func (s *Store) Habits() []model.Habit {
	return s.Snapshot().Habits
}

// TotalExpense sums the current expense amounts.
func (s *Store) TotalExpense() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return metrics.TotalExpense(s.snap.Expenses)
}

// AddSubject appends a new subject with no goals.
func (s *Store) AddSubject(ctx context.Context, name string) error {
	if isBlank(name) {
		return fmt.Errorf("subject name: %w", ErrEmptyInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Subjects = append(s.snap.Subjects, model.Subject{Name: name, Goals: []model.Goal{}})
	return s.commit(ctx, "add_subject", func() {
		s.snap.Subjects = s.snap.Subjects[:len(s.snap.Subjects)-1]
	}, zap.String("name", name))
}

// AddGoal appends an undone goal to subject i and refreshes the subject's
// completion percentage, so the cached value is never stale.
func (s *Store) AddGoal(ctx context.Context, i int, text string) error {
	if isBlank(text) {
		return fmt.Errorf("goal text: %w", ErrEmptyInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSubject(i); err != nil {
		return err
	}

	sub := &s.snap.Subjects[i]
	prevPct := sub.CompletionPercent
	sub.Goals = append(sub.Goals, model.Goal{Text: text})
	sub.CompletionPercent = metrics.CompletionPercent(sub.Goals)

	return s.commit(ctx, "add_goal", func() {
		sub := &s.snap.Subjects[i]
		sub.Goals = sub.Goals[:len(sub.Goals)-1]
		sub.CompletionPercent = prevPct
	}, zap.Int("subject", i), zap.String("text", text))
}

// ToggleGoal flips goal j of subject i and recomputes the subject's
// completion percentage.
func (s *Store) ToggleGoal(ctx context.Context, i, j int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSubject(i); err != nil {
		return err
	}
	sub := &s.snap.Subjects[i]
	if j < 0 || j >= len(sub.Goals) {
		return fmt.Errorf("subject %d goal %d (have %d): %w", i, j, len(sub.Goals), ErrIndexOutOfRange)
	}

	prevPct := sub.CompletionPercent
	sub.Goals[j].Done = !sub.Goals[j].Done
	sub.CompletionPercent = metrics.CompletionPercent(sub.Goals)

	return s.commit(ctx, "toggle_goal", func() {
		sub := &s.snap.Subjects[i]
		sub.Goals[j].Done = !sub.Goals[j].Done
		sub.CompletionPercent = prevPct
	}, zap.Int("subject", i), zap.Int("goal", j))
}

// AddExpense appends an expense. The amount must parse as a finite number;
// it is stored trimmed but otherwise as entered.
func (s *Store) AddExpense(ctx context.Context, name, amount string) error {
	if isBlank(name) {
		return fmt.Errorf("expense name: %w", ErrEmptyInput)
	}
	if isBlank(amount) {
		return fmt.Errorf("expense amount: %w", ErrEmptyInput)
	}
	amount = strings.TrimSpace(amount)
	if _, err := metrics.ParseAmount(amount); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Expenses = append(s.snap.Expenses, model.Expense{Name: name, Amount: amount})
	return s.commit(ctx, "add_expense", func() {
		s.snap.Expenses = s.snap.Expenses[:len(s.snap.Expenses)-1]
	}, zap.String("name", name), zap.String("amount", amount))
}

// AddHabit appends an undone habit.
func (s *Store) AddHabit(ctx context.Context, name string) error {
	if isBlank(name) {
		return fmt.Errorf("habit name: %w", ErrEmptyInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Habits = append(s.snap.Habits, model.Habit{Name: name})
	return s.commit(ctx, "add_habit", func() {
		s.snap.Habits = s.snap.Habits[:len(s.snap.Habits)-1]
	}, zap.String("name", name))
}

// ToggleHabit flips the done flag of habit i.
func (s *Store) ToggleHabit(ctx context.Context, i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.snap.Habits) {
		return fmt.Errorf("habit %d (have %d): %w", i, len(s.snap.Habits), ErrIndexOutOfRange)
	}

	s.snap.Habits[i].Done = !s.snap.Habits[i].Done
	return s.commit(ctx, "toggle_habit", func() {
		s.snap.Habits[i].Done = !s.snap.Habits[i].Done
	}, zap.Int("habit", i))
}

// Replace swaps the whole state for snap, recomputing cached percentages.
// Every record must pass the same checks as the Add operations; otherwise
// nothing is replaced.
func (s *Store) Replace(ctx context.Context, snap model.Snapshot) error {
	next := snap.Clone()
	next.Normalize()
	if err := validate(&next); err != nil {
		return err
	}
	for i := range next.Subjects {
		next.Subjects[i].CompletionPercent = metrics.CompletionPercent(next.Subjects[i].Goals)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.snap
	s.snap = next
	return s.commit(ctx, "replace", func() {
		s.snap = prev
	}, zap.Int("subjects", len(next.Subjects)),
		zap.Int("expenses", len(next.Expenses)),
		zap.Int("habits", len(next.Habits)))
}

// commit persists the already-applied mutation. On failure undo restores
// the previous state so memory never runs ahead of storage.
// Callers must hold s.mu.
func (s *Store) commit(ctx context.Context, op string, undo func(), fields ...zap.Field) error {
	if s.saver == nil {
		s.log.Debug("applied", append(fields, zap.String("op", op))...)
		return nil
	}
	if err := s.saver.Save(ctx, s.snap.Clone()); err != nil {
		undo()
		s.log.Warn("save failed, mutation reverted",
			append(fields, zap.String("op", op), zap.Error(err))...)
		return fmt.Errorf("saving snapshot: %w", err)
	}
	s.log.Debug("applied", append(fields, zap.String("op", op))...)
	return nil
}

func (s *Store) checkSubject(i int) error {
	if i < 0 || i >= len(s.snap.Subjects) {
		return fmt.Errorf("subject %d (have %d): %w", i, len(s.snap.Subjects), ErrIndexOutOfRange)
	}
	return nil
}

// validate applies the Add* input rules to a whole snapshot, trimming
// expense amounts the way AddExpense stores them.
func validate(snap *model.Snapshot) error {
	for i, sub := range snap.Subjects {
		if isBlank(sub.Name) {
			return fmt.Errorf("subject %d name: %w", i, ErrEmptyInput)
		}
		for j, g := range sub.Goals {
			if isBlank(g.Text) {
				return fmt.Errorf("subject %d goal %d text: %w", i, j, ErrEmptyInput)
			}
		}
	}
	for i := range snap.Expenses {
		e := &snap.Expenses[i]
		if isBlank(e.Name) {
			return fmt.Errorf("expense %d name: %w", i, ErrEmptyInput)
		}
		if isBlank(e.Amount) {
			return fmt.Errorf("expense %d amount: %w", i, ErrEmptyInput)
		}
		e.Amount = strings.TrimSpace(e.Amount)
		if _, err := metrics.ParseAmount(e.Amount); err != nil {
			return fmt.Errorf("expense %d: %w: %q", i, ErrInvalidAmount, e.Amount)
		}
	}
	for i, h := range snap.Habits {
		if isBlank(h.Name) {
			return fmt.Errorf("habit %d name: %w", i, ErrEmptyInput)
		}
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
