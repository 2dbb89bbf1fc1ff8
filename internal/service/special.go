package service

import (
	"fmt"

	"github.com/anandda/magazine/internal/model"
)

func heyzine(code string) string {
	return "https://heyzine.com/flip-book/" + code + ".html"
}

// specialIssues are hand-picked editions hosted on heyzine, newest first.
var specialIssues = []model.SpecialIssue{
	{
		ID:          "february-2026",
		Title:       "February 2026",
		IssueDate:   "February 2026",
		Description: "A contemplative edition on focus, clarity, and practice.",
		FlipbookURL: heyzine("02634fdaa6"),
	},
	{
		ID:          "january-2026",
		Title:       "January 2026",
		IssueDate:   "January 2026",
		Description: "New year issue with essays on reset, rhythm, and intention.",
		FlipbookURL: heyzine("9d74cc1623"),
	},
	{
		ID:          "december-2025",
		Title:       "December 2025",
		IssueDate:   "December 2025",
		Description: "Year-end reflections and long-form guidance for mindful living.",
		FlipbookURL: heyzine("07980f1a7d"),
	},
	{
		ID:          "november-2025",
		Title:       "November 2025",
		IssueDate:   "November 2025",
		Description: "Foundational teachings with practical weekly routines.",
		FlipbookURL: heyzine("bd959516ec"),
	},
}

// SpecialIssues returns a copy of the featured special issues.
func SpecialIssues() []model.SpecialIssue {
	out := make([]model.SpecialIssue, len(specialIssues))
	copy(out, specialIssues)
	return out
}

// SpecialIssue returns the featured issue with the given slug.
func SpecialIssue(slug string) (model.SpecialIssue, error) {
	for _, issue := range specialIssues {
		if issue.ID == slug {
			return issue, nil
		}
	}
	return model.SpecialIssue{}, fmt.Errorf("special issue %q: %w", slug, ErrNotFound)
}
