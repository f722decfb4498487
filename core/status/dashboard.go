package status

import "time"

// StudentAssignment is an assignment as a student sees it at a given instant.
type StudentAssignment struct {
	Assignment
	Status           AssignmentStatus `json:"status"`
	SubmissionStatus SubmissionStatus `json:"submission_status"`
	GradingState     GradingState     `json:"grading_state,omitempty"`
	Grade            *float64         `json:"grade,omitempty"`
}

// StudentAssignments classifies every assignment for studentID, soonest due first.
// GradingState and Grade are only set once the student has submitted.
func StudentAssignments(assignments []Assignment, studentID string, now time.Time) []StudentAssignment {
	sorted := make([]Assignment, len(assignments))
	copy(sorted, assignments)
	SortByDueDate(sorted)

	out := make([]StudentAssignment, 0, len(sorted))
	for _, a := range sorted {
		sa := StudentAssignment{
			Assignment:       a,
			Status:           a.StatusAt(now),
			SubmissionStatus: ClassifySubmission(a, a.Submissions, studentID, now),
		}
		if sub, ok := FindSubmission(a.Submissions, studentID); ok {
			sa.GradingState = sub.GradingState()
			sa.Grade = sub.Grade.Ptr()
		}
		out = append(out, sa)
	}
	return out
}

// Reminders returns the assignments studentID still has to hand in that are
// due soon or overdue, soonest due first.
func Reminders(assignments []Assignment, studentID string, now time.Time) []StudentAssignment {
	var out []StudentAssignment
	for _, sa := range StudentAssignments(assignments, studentID, now) {
		if sa.SubmissionStatus == SubmissionSubmitted || sa.Status == AssignmentActive {
			continue
		}
		out = append(out, sa)
	}
	return out
}
