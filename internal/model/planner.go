// Package model defines the domain records deskpad keeps in its store.
package model

// Goal is a single daily goal inside a subject.
type Goal struct {
	Text string `json:"text" yaml:"text"`
	Done bool   `json:"done" yaml:"done"`
}

// Subject is a study subject with its ordered goals.
// CompletionPercent is cached on the record because it is part of the
// stored format; the store refreshes it on every goal mutation.
type Subject struct {
	Name              string `json:"name" yaml:"name"`
	Goals             []Goal `json:"goals" yaml:"goals"`
	CompletionPercent int    `json:"completionPercent" yaml:"completionPercent"`
}

// Expense is one spending entry. Amount is kept exactly as entered.
type Expense struct {
	Name   string `json:"name" yaml:"name"`
	Amount string `json:"amount" yaml:"amount"`
}

// Habit is a tracked habit with a done flag.
type Habit struct {
	Name string `json:"name" yaml:"name"`
	Done bool   `json:"done" yaml:"done"`
}

// DoneCount returns how many of the subject's goals are done.
func (s Subject) DoneCount() int {
	n := 0
	for _, g := range s.Goals {
		if g.Done {
			n++
		}
	}
	return n
}
