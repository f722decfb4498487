package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-timetable/core/reminder"
)

type reminderApi struct {
	svc      reminder.Service
	validate *validator.Validate
}

func registerReminderAPI(g *echo.Group, svc reminder.Service, validate *validator.Validate) {
	api := reminderApi{svc: svc, validate: validate}
	g.POST("/reminders", api.send)
}

func (api *reminderApi) send(ctx echo.Context) error {
	var data reminder.Request
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to reminder.Request")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	now, err := requestTime(ctx)
	if err != nil {
		return err
	}

	dgst, err := api.svc.Send(data, now)
	if err != nil {
		return errors.Wrap(err, "sending reminder")
	}
	return ctx.JSON(http.StatusOK, dgst)
}
