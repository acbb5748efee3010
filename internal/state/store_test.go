package state

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/theirongolddev/deskpad/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recordingSaver keeps every snapshot it was asked to save and can be told
// to fail.
type recordingSaver struct {
	saved []model.Snapshot
	err   error
}

func (r *recordingSaver) Save(_ context.Context, snap model.Snapshot) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, snap)
	return nil
}

func (r *recordingSaver) last(t *testing.T) model.Snapshot {
	t.Helper()
	require.NotEmpty(t, r.saved, "nothing saved")
	return r.saved[len(r.saved)-1]
}

func newStore(t *testing.T) (*Store, *recordingSaver) {
	t.Helper()
	saver := &recordingSaver{}
	return New(model.Empty(), saver), saver
}

func TestAddSubjectCountsOnlyNonBlankNames(t *testing.T) {
	ctx := context.Background()
	s, saver := newStore(t)

	names := []string{"Math", "", "Physics", "   ", "\t", "History"}
	want := 0
	for _, n := range names {
		err := s.AddSubject(ctx, n)
		if n == "Math" || n == "Physics" || n == "History" {
			require.NoError(t, err)
			want++
		} else {
			assert.ErrorIs(t, err, ErrEmptyInput)
		}
	}

	assert.Len(t, s.Subjects(), want)
	assert.Len(t, saver.saved, want, "one save per successful mutation")
}

func TestStudyScenario(t *testing.T) {
	ctx := context.Background()
	s, saver := newStore(t)

	require.NoError(t, s.AddSubject(ctx, "Math"))
	require.NoError(t, s.AddGoal(ctx, 0, "Read ch1"))
	require.NoError(t, s.ToggleGoal(ctx, 0, 0))

	want := []model.Subject{{
		Name:              "Math",
		Goals:             []model.Goal{{Text: "Read ch1", Done: true}},
		CompletionPercent: 100,
	}}
	if diff := cmp.Diff(want, s.Subjects()); diff != "" {
		t.Fatalf("subjects mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, saver.last(t).Subjects); diff != "" {
		t.Fatalf("persisted subjects mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleGoalIsItsOwnInverse(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	require.NoError(t, s.AddSubject(ctx, "Math"))
	for _, g := range []string{"a", "b", "c"} {
		require.NoError(t, s.AddGoal(ctx, 0, g))
	}
	require.NoError(t, s.ToggleGoal(ctx, 0, 2))

	before := s.Subjects()
	require.NoError(t, s.ToggleGoal(ctx, 0, 1))
	assert.Equal(t, 67, s.Subjects()[0].CompletionPercent)
	require.NoError(t, s.ToggleGoal(ctx, 0, 1))

	if diff := cmp.Diff(before, s.Subjects()); diff != "" {
		t.Fatalf("double toggle changed state (-before +after):\n%s", diff)
	}
}

func TestAddGoalRefreshesPercent(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	require.NoError(t, s.AddSubject(ctx, "Math"))
	require.NoError(t, s.AddGoal(ctx, 0, "a"))
	require.NoError(t, s.ToggleGoal(ctx, 0, 0))
	require.Equal(t, 100, s.Subjects()[0].CompletionPercent)

	require.NoError(t, s.AddGoal(ctx, 0, "b"))
	assert.Equal(t, 50, s.Subjects()[0].CompletionPercent)
}

func TestGoalValidation(t *testing.T) {
	ctx := context.Background()
	s, saver := newStore(t)
	require.NoError(t, s.AddSubject(ctx, "Math"))
	saves := len(saver.saved)

	assert.ErrorIs(t, s.AddGoal(ctx, 0, " "), ErrEmptyInput)
	assert.ErrorIs(t, s.AddGoal(ctx, 1, "x"), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.AddGoal(ctx, -1, "x"), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.ToggleGoal(ctx, 0, 0), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.ToggleGoal(ctx, 3, 0), ErrIndexOutOfRange)

	assert.Empty(t, s.Subjects()[0].Goals)
	assert.Len(t, saver.saved, saves, "rejected operations must not save")
}

func TestExpenseScenario(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	require.NoError(t, s.AddExpense(ctx, "Coffee", "50"))
	require.NoError(t, s.AddExpense(ctx, "Book", "150"))

	assert.Equal(t, 200.0, s.TotalExpense())
	assert.Equal(t, []model.Expense{{Name: "Coffee", Amount: "50"}, {Name: "Book", Amount: "150"}}, s.Expenses())
}

func TestAddExpenseValidation(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	assert.ErrorIs(t, s.AddExpense(ctx, "", "10"), ErrEmptyInput)
	assert.ErrorIs(t, s.AddExpense(ctx, "Coffee", ""), ErrEmptyInput)
	assert.ErrorIs(t, s.AddExpense(ctx, "Coffee", "ten"), ErrInvalidAmount)
	assert.ErrorIs(t, s.AddExpense(ctx, "Coffee", "NaN"), ErrInvalidAmount)
	assert.Empty(t, s.Expenses())

	require.NoError(t, s.AddExpense(ctx, "Tea", " 12.50 "))
	assert.Equal(t, "12.50", s.Expenses()[0].Amount)
}

func TestHabitScenario(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	require.NoError(t, s.AddHabit(ctx, "Read"))
	require.NoError(t, s.ToggleHabit(ctx, 0))
	assert.True(t, s.Habits()[0].Done)
	require.NoError(t, s.ToggleHabit(ctx, 0))
	assert.False(t, s.Habits()[0].Done)

	assert.ErrorIs(t, s.ToggleHabit(ctx, 1), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.AddHabit(ctx, ""), ErrEmptyInput)
}

func TestFailedSaveLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	s, saver := newStore(t)
	require.NoError(t, s.AddSubject(ctx, "Math"))
	require.NoError(t, s.AddGoal(ctx, 0, "a"))
	require.NoError(t, s.AddHabit(ctx, "Read"))
	before := s.Snapshot()

	boom := errors.New("disk full")
	saver.err = boom

	ops := map[string]func() error{
		"add subject":  func() error { return s.AddSubject(ctx, "Physics") },
		"add goal":     func() error { return s.AddGoal(ctx, 0, "b") },
		"toggle goal":  func() error { return s.ToggleGoal(ctx, 0, 0) },
		"add expense":  func() error { return s.AddExpense(ctx, "Coffee", "5") },
		"add habit":    func() error { return s.AddHabit(ctx, "Run") },
		"toggle habit": func() error { return s.ToggleHabit(ctx, 0) },
		"replace":      func() error { return s.Replace(ctx, model.Empty()) },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			err := op()
			require.ErrorIs(t, err, boom)
			if diff := cmp.Diff(before, s.Snapshot()); diff != "" {
				t.Fatalf("state changed after failed save (-before +after):\n%s", diff)
			}
		})
	}
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	require.NoError(t, s.AddSubject(ctx, "Math"))
	require.NoError(t, s.AddGoal(ctx, 0, "a"))

	snap := s.Snapshot()
	snap.Subjects[0].Goals[0].Done = true
	snap.Subjects[0].Name = "changed"

	got := s.Subjects()[0]
	assert.False(t, got.Goals[0].Done)
	assert.Equal(t, "Math", got.Name)
}

func TestReplaceRecomputesPercent(t *testing.T) {
	ctx := context.Background()
	s, saver := newStore(t)

	in := model.Snapshot{Subjects: []model.Subject{{
		Name:              "Math",
		Goals:             []model.Goal{{Text: "a", Done: true}, {Text: "b"}},
		CompletionPercent: 0,
	}}}
	require.NoError(t, s.Replace(ctx, in))

	got := s.Snapshot()
	assert.Equal(t, 50, got.Subjects[0].CompletionPercent)
	assert.NotNil(t, got.Expenses)
	assert.NotNil(t, got.Habits)
	assert.Equal(t, got, saver.last(t))
}

func TestReplaceRejectsInvalidRecords(t *testing.T) {
	ctx := context.Background()
	s, saver := newStore(t)
	require.NoError(t, s.AddExpense(ctx, "Tea", "3"))
	before := s.Snapshot()
	saves := len(saver.saved)

	tests := []struct {
		name string
		snap model.Snapshot
		want error
	}{
		{"non-numeric amount", model.Snapshot{Expenses: []model.Expense{{Name: "Coffee", Amount: "abc"}}}, ErrInvalidAmount},
		{"blank expense name", model.Snapshot{Expenses: []model.Expense{{Name: "", Amount: "5"}}}, ErrEmptyInput},
		{"blank amount", model.Snapshot{Expenses: []model.Expense{{Name: "Coffee", Amount: " "}}}, ErrEmptyInput},
		{"blank subject", model.Snapshot{Subjects: []model.Subject{{Name: "  "}}}, ErrEmptyInput},
		{"blank goal", model.Snapshot{Subjects: []model.Subject{{Name: "Math", Goals: []model.Goal{{Text: ""}}}}}, ErrEmptyInput},
		{"blank habit", model.Snapshot{Habits: []model.Habit{{Name: "\t"}}}, ErrEmptyInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, s.Replace(ctx, tt.snap), tt.want)
			assert.Equal(t, before, s.Snapshot())
			assert.Len(t, saver.saved, saves)
		})
	}
}

func TestReplaceTrimsAmounts(t *testing.T) {
	s, _ := newStore(t)
	in := model.Snapshot{Expenses: []model.Expense{{Name: "Coffee", Amount: " 2.5 "}}}
	require.NoError(t, s.Replace(context.Background(), in))
	assert.Equal(t, "2.5", s.Expenses()[0].Amount)
	assert.Equal(t, 2.5, s.TotalExpense())
}

func TestNilSaverKeepsStateInMemory(t *testing.T) {
	s := New(model.Snapshot{}, nil)
	require.NoError(t, s.AddHabit(context.Background(), "Read"))
	assert.Len(t, s.Habits(), 1)
}

func TestNonBlankNameStoredVerbatim(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.AddSubject(context.Background(), "  Math "))
	assert.Equal(t, "  Math ", s.Subjects()[0].Name)
}
