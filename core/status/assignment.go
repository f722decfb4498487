package status

import (
	"math"
	"slices"
	"time"

	"github.com/volatiletech/null/v8"
)

// Assignment statuses
const (
	AssignmentActive  AssignmentStatus = "active"
	AssignmentDueSoon AssignmentStatus = "due-soon"
	AssignmentOverdue AssignmentStatus = "overdue"
)

// Submission statuses
const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionPending   SubmissionStatus = "pending"
	SubmissionOverdue   SubmissionStatus = "overdue"
)

// Grading states
const (
	Graded   GradingState = "graded"
	Ungraded GradingState = "ungraded"
)

// DueSoonWindowDays is the number of days before the due date an assignment is due-soon.
const DueSoonWindowDays = 3

const day = 24 * time.Hour

type (
	AssignmentStatus string
	SubmissionStatus string
	GradingState     string

	Assignment struct {
		ID          string       `json:"id"`
		Title       string       `json:"title"`
		Subject     string       `json:"subject"`
		ClassRef    string       `json:"class_ref"`
		DueDate     time.Time    `json:"due_date"`
		MaxScore    float64      `json:"max_score"`
		Submissions []Submission `json:"submissions"`
	}

	Submission struct {
		ID           string       `json:"id"`
		AssignmentID string       `json:"assignment_id"`
		Student      string       `json:"student"`
		SubmittedAt  time.Time    `json:"submitted_at"`
		Grade        null.Float64 `json:"grade"`
		Feedback     null.String  `json:"feedback"`
	}
)

// DaysUntil returns the whole days left until due, rounded up.
// A due date a few hours ahead counts as 1, one a few hours ago as 0.
func DaysUntil(due, now time.Time) int {
	return int(math.Ceil(float64(due.Sub(now)) / float64(day)))
}

func ClassifyAssignment(due, now time.Time) AssignmentStatus {
	switch diff := DaysUntil(due, now); {
	case diff < 0:
		return AssignmentOverdue
	case diff <= DueSoonWindowDays:
		return AssignmentDueSoon
	default:
		return AssignmentActive
	}
}

// StatusAt classifies the assignment at now.
func (a Assignment) StatusAt(now time.Time) AssignmentStatus {
	return ClassifyAssignment(a.DueDate, now)
}

// FindSubmission returns the first submission made by studentID.
func FindSubmission(subs []Submission, studentID string) (Submission, bool) {
	for _, s := range subs {
		if s.Student == studentID {
			return s, true
		}
	}
	return Submission{}, false
}

// ClassifySubmission derives a student's submission status for an assignment.
// subs is usually a.Submissions but may come from a separate query.
func ClassifySubmission(a Assignment, subs []Submission, studentID string, now time.Time) SubmissionStatus {
	if _, ok := FindSubmission(subs, studentID); ok {
		return SubmissionSubmitted
	}
	if a.StatusAt(now) == AssignmentOverdue {
		return SubmissionOverdue
	}
	return SubmissionPending
}

func (s Submission) GradingState() GradingState {
	if s.Grade.Valid {
		return Graded
	}
	return Ungraded
}

// PartitionAssignments groups assignments by their status at now, keeping input order.
// Every status has a non-nil bucket.
func PartitionAssignments(assignments []Assignment, now time.Time) map[AssignmentStatus][]Assignment {
	buckets := map[AssignmentStatus][]Assignment{
		AssignmentActive:  {},
		AssignmentDueSoon: {},
		AssignmentOverdue: {},
	}
	for _, a := range assignments {
		st := a.StatusAt(now)
		buckets[st] = append(buckets[st], a)
	}
	return buckets
}

// SortByDueDate sorts assignments in place, soonest first; ties keep their order.
func SortByDueDate(assignments []Assignment) {
	slices.SortStableFunc(assignments, func(a, b Assignment) int {
		return a.DueDate.Compare(b.DueDate)
	})
}

// SubmissionSummary is how a class teacher sees one assignment.
type SubmissionSummary struct {
	AssignmentID string           `json:"assignment_id"`
	Title        string           `json:"title"`
	Status       AssignmentStatus `json:"status"`
	Submitted    int              `json:"submitted"`
	Graded       int              `json:"graded"`
	Ungraded     int              `json:"ungraded"`
	Pending      int              `json:"pending"`
}

// SummarizeSubmissions counts submissions per assignment against a class roster.
// Students listed or submitting more than once are counted once; submissions by
// students outside the roster are ignored when a roster is given.
func SummarizeSubmissions(assignments []Assignment, roster []string, now time.Time) []SubmissionSummary {
	members := make(map[string]bool, len(roster))
	for _, student := range roster {
		members[student] = true
	}

	summaries := make([]SubmissionSummary, 0, len(assignments))
	for _, a := range assignments {
		sum := SubmissionSummary{AssignmentID: a.ID, Title: a.Title, Status: a.StatusAt(now)}
		seen := make(map[string]bool, len(a.Submissions))
		for _, s := range a.Submissions {
			if seen[s.Student] || (len(members) > 0 && !members[s.Student]) {
				continue
			}
			seen[s.Student] = true
			sum.Submitted++
			if s.GradingState() == Graded {
				sum.Graded++
			} else {
				sum.Ungraded++
			}
		}
		if len(members) > 0 {
			sum.Pending = len(members) - sum.Submitted
		}
		summaries = append(summaries, sum)
	}
	return summaries
}
