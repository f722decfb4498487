package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_statusApi_assignments(t *testing.T) {
	app := setup(t)

	body := `{
		"student_id":"alice",
		"assignments":[
			{"id":"a1","title":"Project","due_date":"2024-03-20T00:00:00Z"},
			{"id":"a2","title":"Essay","due_date":"2024-03-01T00:00:00Z","submissions":[{"student":"alice","grade":14}]},
			{"id":"a3","title":"Lab","due_date":"2024-03-04T09:30:00Z"}
		]}`
	rec := app.do(http.MethodPost, "/v1/status/assignments", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp AssignmentsResponse
	decode(t, rec, &resp)
	require.Len(t, resp.Active, 1)
	assert.Equal(t, "a1", resp.Active[0].ID)
	require.Len(t, resp.DueSoon, 1)
	assert.Equal(t, "a3", resp.DueSoon[0].ID, "due exactly now is due-soon")
	require.Len(t, resp.Overdue, 1)
	assert.Equal(t, "a2", resp.Overdue[0].ID)

	require.Len(t, resp.Student, 3)
	assert.Equal(t, "a2", resp.Student[0].ID)
	assert.Equal(t, "submitted", string(resp.Student[0].SubmissionStatus))
	assert.Equal(t, "graded", string(resp.Student[0].GradingState))
	assert.Equal(t, "pending", string(resp.Student[1].SubmissionStatus))

	app.run(t, []httpTest{
		{
			name: "no assignments", method: http.MethodPost, path: "/v1/status/assignments", body: `{}`,
			wantCode: http.StatusOK, wantData: `{"active":[],"due_soon":[],"overdue":[]}`,
		},
		{
			name: "later", method: http.MethodPost, path: "/v1/status/assignments?at=2024-03-05T09:30:01Z",
			body:     `{"assignments":[{"id":"a3","title":"Lab","due_date":"2024-03-04T09:30:00Z"}]}`,
			wantCode: http.StatusOK,
			wantData: `{"active":[],"due_soon":[],"overdue":[{"id":"a3","title":"Lab","subject":"","class_ref":"","due_date":"2024-03-04T09:30:00Z","max_score":0,"submissions":null}]}`,
		},
	})
}

func Test_statusApi_submissions(t *testing.T) {
	app := setup(t)

	app.run(t, []httpTest{
		{
			name: "summary", method: http.MethodPost, path: "/v1/status/submissions",
			body: `{
				"roster":["alice","bob","carol"],
				"assignments":[{"id":"a1","title":"Essay","due_date":"2024-03-10T00:00:00Z",
					"submissions":[{"student":"alice","grade":12.5},{"student":"bob"}]}]}`,
			wantCode: http.StatusOK,
			wantData: `[{"assignment_id":"a1","title":"Essay","status":"active","submitted":2,"graded":1,"ungraded":1,"pending":1}]`,
		},
		{name: "empty", method: http.MethodPost, path: "/v1/status/submissions", body: `{}`, wantCode: http.StatusOK, wantData: `[]`},
	})
}

func Test_statusApi_attendance(t *testing.T) {
	app := setup(t)

	app.run(t, []httpTest{
		{
			name: "aggregate", method: http.MethodPost, path: "/v1/status/attendance",
			body: `{"records":[
				{"date":"2024-03-01T00:00:00Z","status":"present","subject":"Maths"},
				{"date":"2024-03-02T00:00:00Z","status":"present","subject":"Maths"},
				{"date":"2024-03-03T00:00:00Z","status":"present","subject":"Biology"},
				{"date":"2024-03-04T00:00:00Z","status":"late","subject":"Biology","notes":"bus"}
			]}`,
			wantCode: http.StatusOK,
			wantData: `{
				"overall":{"total_classes":4,"present_days":3,"absent_days":0,"late_days":1,"attendance_percentage":75},
				"by_subject":[
					{"subject":"Biology","total_classes":2,"present_days":1,"absent_days":0,"late_days":1,"attendance_percentage":50},
					{"subject":"Maths","total_classes":2,"present_days":2,"absent_days":0,"late_days":0,"attendance_percentage":100}
				]}`,
		},
		{
			name: "empty", method: http.MethodPost, path: "/v1/status/attendance", body: `{"records":[]}`,
			wantCode: http.StatusOK,
			wantData: `{"overall":{"total_classes":0,"present_days":0,"absent_days":0,"late_days":0,"attendance_percentage":0},"by_subject":[]}`,
		},
	})
}
