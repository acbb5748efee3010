package metrics

import "github.com/theirongolddev/deskpad/internal/model"

// Summary bundles the headline numbers shown by the CLI summary and the
// TUI status bar.
type Summary struct {
	Subjects          int
	Goals             int
	GoalsDone         int
	OverallCompletion int

	Expenses     int
	TotalExpense float64

	Habits        int
	HabitsDone    int
	HabitsPercent int
}

// Summarize computes a Summary from a snapshot.
func Summarize(s model.Snapshot) Summary {
	sum := Summary{
		Subjects:          len(s.Subjects),
		OverallCompletion: OverallCompletion(s.Subjects),
		Expenses:          len(s.Expenses),
		TotalExpense:      TotalExpense(s.Expenses),
	}
	for _, sub := range s.Subjects {
		sum.Goals += len(sub.Goals)
		sum.GoalsDone += sub.DoneCount()
	}
	sum.HabitsDone, sum.Habits, sum.HabitsPercent = HabitStats(s.Habits)
	return sum
}
