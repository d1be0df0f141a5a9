package domain

import (
	"sort"
	"time"
)

// TopicSubmission is an immutable topic proposal, keyed by its event id.
type TopicSubmission struct {
	EventID     string
	Title       string
	Description string
	Sender      string
	SubmittedAt time.Time
}

// SortSubmissions orders submissions by submission time, oldest first.
func SortSubmissions(submissions []TopicSubmission) {
	sort.SliceStable(submissions, func(i, j int) bool {
		left, right := submissions[i], submissions[j]
		if left.SubmittedAt.Equal(right.SubmittedAt) {
			return left.EventID < right.EventID
		}
		return left.SubmittedAt.Before(right.SubmittedAt)
	})
}

// AvailableSubmissions returns the submissions not yet admitted into the
// grid, oldest first. The input is not modified.
func AvailableSubmissions(submissions []TopicSubmission, consumed []string) []TopicSubmission {
	seen := make(map[string]struct{}, len(consumed))
	for _, id := range consumed {
		seen[id] = struct{}{}
	}

	available := make([]TopicSubmission, 0, len(submissions))
	for _, submission := range submissions {
		if _, ok := seen[submission.EventID]; ok {
			continue
		}
		available = append(available, submission)
	}
	SortSubmissions(available)

	return available
}
