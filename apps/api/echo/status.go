package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-timetable/core/status"
)

type (
	AssignmentsRequest struct {
		StudentID   string              `json:"student_id"`
		Assignments []status.Assignment `json:"assignments"`
	}

	AssignmentsResponse struct {
		Active  []status.Assignment `json:"active"`
		DueSoon []status.Assignment `json:"due_soon"`
		Overdue []status.Assignment `json:"overdue"`
		// Student is only set when a student_id was given.
		Student []status.StudentAssignment `json:"student,omitempty"`
	}

	SubmissionsRequest struct {
		Roster      []string            `json:"roster"`
		Assignments []status.Assignment `json:"assignments"`
	}

	AttendanceRequest struct {
		Records []status.AttendanceRecord `json:"records"`
	}

	AttendanceResponse struct {
		Overall   status.AttendanceAggregate `json:"overall"`
		BySubject []status.SubjectAttendance `json:"by_subject"`
	}
)

type statusApi struct{}

func registerStatusAPI(g *echo.Group) {
	api := statusApi{}

	sg := g.Group("/status")
	sg.POST("/assignments", api.assignments)
	sg.POST("/submissions", api.submissions)
	sg.POST("/attendance", api.attendance)
}

// Handlers

func (api statusApi) assignments(ctx echo.Context) error {
	var data AssignmentsRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AssignmentsRequest")
	}
	now, err := requestTime(ctx)
	if err != nil {
		return err
	}

	status.SortByDueDate(data.Assignments)
	buckets := status.PartitionAssignments(data.Assignments, now)
	resp := AssignmentsResponse{
		Active:  buckets[status.AssignmentActive],
		DueSoon: buckets[status.AssignmentDueSoon],
		Overdue: buckets[status.AssignmentOverdue],
	}
	if data.StudentID != "" {
		resp.Student = status.StudentAssignments(data.Assignments, data.StudentID, now)
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api statusApi) submissions(ctx echo.Context) error {
	var data SubmissionsRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SubmissionsRequest")
	}
	now, err := requestTime(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, status.SummarizeSubmissions(data.Assignments, data.Roster, now))
}

func (api statusApi) attendance(ctx echo.Context) error {
	var data AttendanceRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AttendanceRequest")
	}
	return ctx.JSON(http.StatusOK, AttendanceResponse{
		Overall:   status.AggregateAttendance(data.Records),
		BySubject: status.AggregateBySubject(data.Records),
	})
}
