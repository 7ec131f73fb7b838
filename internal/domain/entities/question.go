package entities

import "slices"

// Question is one round of the game: an image and the names to pick from.
type Question struct {
	Image         string   `json:"image"`
	Artwork       string   `json:"artwork,omitempty"`
	CorrectAnswer string   `json:"correctAnswer"`
	Options       []string `json:"options"` // correct answer plus distractors, shuffled
}

// HasOption reports whether option is one of the offered answers.
func (q *Question) HasOption(option string) bool {
	return slices.Contains(q.Options, option)
}

// Clone returns a deep copy of q.
func (q *Question) Clone() *Question {
	if q == nil {
		return nil
	}
	c := *q
	c.Options = slices.Clone(q.Options)
	return &c
}
