package echoapi

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-timetable/core"
	"github.com/trezcool/masomo-timetable/core/catalog"
	"github.com/trezcool/masomo-timetable/core/timetable"
)

var nowFunc = time.Now // mockable

type (
	axesSource interface {
		current(ctx context.Context) (catalog.Catalog, error)
	}

	timetableApi struct {
		svc      timetable.Service
		axes     axesSource
		validate *validator.Validate
	}

	// NextLectureResponse is empty (found == false) when no lecture is left today.
	NextLectureResponse struct {
		Day     string             `json:"day"`
		Found   bool               `json:"found"`
		Lecture *timetable.Lecture `json:"lecture"`
	}
)

func registerTimetableAPI(g *echo.Group, svc timetable.Service, axes axesSource, validate *validator.Validate) {
	api := timetableApi{svc: svc, axes: axes, validate: validate}

	tg := g.Group("/timetables/:kind/:id")
	tg.GET("", api.retrieve)
	tg.GET("/days/:day", api.day)
	tg.GET("/next", api.next)
	tg.GET("/orphans", api.orphans)
	tg.PUT("/lectures", api.upsert)
	tg.DELETE("/lectures/:lecture", api.destroy)
}

func (api *timetableApi) owner(ctx echo.Context) (timetable.Owner, error) {
	return timetable.ParseOwner(ctx.Param("kind"), ctx.Param("id"))
}

func (api *timetableApi) grid(ctx echo.Context) (*timetable.Grid, error) {
	owner, err := api.owner(ctx)
	if err != nil {
		return nil, err
	}
	reqCtx := ctx.Request().Context()
	cat, err := api.axes.current(reqCtx)
	if err != nil {
		return nil, err
	}
	return api.svc.Grid(reqCtx, owner, cat)
}

// Handlers

func (api *timetableApi) retrieve(ctx echo.Context) error {
	grid, err := api.grid(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, grid.View())
}

func (api *timetableApi) day(ctx echo.Context) error {
	owner, err := api.owner(ctx)
	if err != nil {
		return err
	}
	day, err := url.PathUnescape(ctx.Param("day"))
	if err != nil {
		return errHttpNotFound
	}

	reqCtx := ctx.Request().Context()
	cat, err := api.axes.current(reqCtx)
	if err != nil {
		return err
	}
	entries, err := api.svc.DayEntries(reqCtx, owner, cat, day)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *timetableApi) next(ctx echo.Context) error {
	owner, err := api.owner(ctx)
	if err != nil {
		return err
	}
	now, err := requestTime(ctx)
	if err != nil {
		return err
	}

	reqCtx := ctx.Request().Context()
	cat, err := api.axes.current(reqCtx)
	if err != nil {
		return err
	}
	l, found, err := api.svc.NextLecture(reqCtx, owner, cat, now)
	if err != nil {
		return err
	}

	resp := NextLectureResponse{Day: timetable.DayLabel(now), Found: found}
	if found {
		resp.Lecture = &l
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *timetableApi) orphans(ctx echo.Context) error {
	grid, err := api.grid(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, grid.Orphans())
}

func (api *timetableApi) upsert(ctx echo.Context) error {
	owner, err := api.owner(ctx)
	if err != nil {
		return err
	}
	var data timetable.NewLecture
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLecture")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	reqCtx := ctx.Request().Context()
	cat, err := api.axes.current(reqCtx)
	if err != nil {
		return err
	}
	l, err := api.svc.Upsert(reqCtx, owner, cat, data)
	if err != nil {
		return err
	}

	code := http.StatusOK
	if data.ID == "" {
		code = http.StatusCreated
	}
	return ctx.JSON(code, l)
}

func (api *timetableApi) destroy(ctx echo.Context) error {
	owner, err := api.owner(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Remove(ctx.Request().Context(), owner, ctx.Param("lecture")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// requestTime reads the `at` query param (RFC 3339), defaulting to the current time.
func requestTime(ctx echo.Context) (time.Time, error) {
	at := ctx.QueryParam("at")
	if at == "" {
		return nowFunc(), nil
	}
	t, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return time.Time{}, core.NewValidationError(err, core.FieldError{Field: "at", Error: "time must be in RFC 3339 format"})
	}
	return t, nil
}
