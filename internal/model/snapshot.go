package model

// Snapshot is the full serializable state of every tracked collection.
type Snapshot struct {
	Subjects []Subject `json:"subjects" yaml:"subjects"`
	Expenses []Expense `json:"expenses" yaml:"expenses"`
	Habits   []Habit   `json:"habits" yaml:"habits"`
}

// Empty returns a snapshot with non-nil, zero-length collections so it
// serializes as empty arrays rather than null.
func Empty() Snapshot {
	return Snapshot{
		Subjects: []Subject{},
		Expenses: []Expense{},
		Habits:   []Habit{},
	}
}

// Clone returns a deep copy. Subjects' goal slices are copied too.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Subjects: make([]Subject, len(s.Subjects)),
		Expenses: make([]Expense, len(s.Expenses)),
		Habits:   make([]Habit, len(s.Habits)),
	}
	for i, sub := range s.Subjects {
		out.Subjects[i] = sub.Clone()
	}
	copy(out.Expenses, s.Expenses)
	copy(out.Habits, s.Habits)
	return out
}

// Normalize replaces nil collections with empty ones.
func (s *Snapshot) Normalize() {
	if s.Subjects == nil {
		s.Subjects = []Subject{}
	}
	if s.Expenses == nil {
		s.Expenses = []Expense{}
	}
	if s.Habits == nil {
		s.Habits = []Habit{}
	}
	for i := range s.Subjects {
		if s.Subjects[i].Goals == nil {
			s.Subjects[i].Goals = []Goal{}
		}
	}
}

// Clone returns a copy of the subject with its own goal slice.
func (s Subject) Clone() Subject {
	goals := make([]Goal, len(s.Goals))
	copy(goals, s.Goals)
	s.Goals = goals
	return s
}
