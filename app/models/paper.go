package models

import "time"

// Paper is a single astro-ph article proposed for coffee discussion.
type Paper struct {
	ID            int        `json:"id"`
	URL           string     `json:"url"`
	Author        string     `json:"author,omitempty"`
	AuthorNumber  int        `json:"author_number,omitempty"`
	Title         string     `json:"title,omitempty"`
	DateSubmitted time.Time  `json:"date_submitted"`
	DateExtended  *time.Time `json:"date_extended,omitempty"`
	Abstract      string     `json:"abstract,omitempty"`
	Subject       string     `json:"subject,omitempty"`
	Sources       string     `json:"sources,omitempty"`
	Volunteer     string     `json:"volunteer,omitempty"`
	Discussed     bool       `json:"discussed"`
}

// EtAl reports whether the stored author list was truncated for display,
// i.e. the paper has more authors than the ones kept.
func (p *Paper) EtAl() bool {
	return p.AuthorNumber > 4
}
