package status

import (
	"slices"
	"time"

	"github.com/volatiletech/null/v8"
)

// Attendance statuses
const (
	Present AttendanceStatus = "present"
	Absent  AttendanceStatus = "absent"
	Late    AttendanceStatus = "late"
)

type (
	AttendanceStatus string

	AttendanceRecord struct {
		Date     time.Time        `json:"date"`
		Status   AttendanceStatus `json:"status"`
		Subject  null.String      `json:"subject"`
		TimeSlot null.String      `json:"time_slot"`
		Notes    null.String      `json:"notes"`
	}

	AttendanceAggregate struct {
		TotalClasses         int `json:"total_classes"`
		PresentDays          int `json:"present_days"`
		AbsentDays           int `json:"absent_days"`
		LateDays             int `json:"late_days"`
		AttendancePercentage int `json:"attendance_percentage"`
	}
)

// AggregateAttendance counts records per status and computes the share of
// present records as a whole percentage, rounded half up.
// Late records are not counted as present. Records with an unknown status
// only count towards the total.
func AggregateAttendance(records []AttendanceRecord) AttendanceAggregate {
	agg := AttendanceAggregate{TotalClasses: len(records)}
	for _, r := range records {
		switch r.Status {
		case Present:
			agg.PresentDays++
		case Absent:
			agg.AbsentDays++
		case Late:
			agg.LateDays++
		}
	}
	agg.AttendancePercentage = percentage(agg.PresentDays, agg.TotalClasses)
	return agg
}

// percentage returns round(part/total*100) with halves rounded up, 0 when total is 0.
func percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (part*200 + total) / (2 * total)
}

// SubjectAttendance is the aggregate of one subject's records.
type SubjectAttendance struct {
	Subject string `json:"subject"`
	AttendanceAggregate
}

// AggregateBySubject aggregates records per subject, sorted by subject name.
// Records without a subject are grouped under "".
func AggregateBySubject(records []AttendanceRecord) []SubjectAttendance {
	groups := make(map[string][]AttendanceRecord)
	for _, r := range records {
		groups[r.Subject.String] = append(groups[r.Subject.String], r)
	}

	subjects := make([]string, 0, len(groups))
	for s := range groups {
		subjects = append(subjects, s)
	}
	slices.Sort(subjects)

	out := make([]SubjectAttendance, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, SubjectAttendance{Subject: s, AttendanceAggregate: AggregateAttendance(groups[s])})
	}
	return out
}
