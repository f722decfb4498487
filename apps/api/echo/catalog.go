package echoapi

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-timetable/core/catalog"
)

// catalogApi holds the process-wide catalog. It is loaded from the store on
// first use, then kept in memory and only written back by the service.
type catalogApi struct {
	svc      catalog.Service
	validate *validator.Validate

	mu     sync.Mutex
	loaded bool
	cat    catalog.Catalog
}

func registerCatalogAPI(g *echo.Group, svc catalog.Service, validate *validator.Validate) *catalogApi {
	api := &catalogApi{svc: svc, validate: validate}

	cg := g.Group("/catalog")
	cg.GET("", api.retrieve)
	cg.POST("/days", api.addDay)
	cg.DELETE("/days/:label", api.removeDay)
	cg.POST("/slots", api.addSlot)
	cg.DELETE("/slots/:label", api.removeSlot)

	return api
}

func (api *catalogApi) load(ctx context.Context) error {
	if api.loaded {
		return nil
	}
	cat, err := api.svc.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "loading catalog")
	}
	api.cat, api.loaded = cat, true
	return nil
}

// current returns a copy of the catalog.
func (api *catalogApi) current(ctx context.Context) (catalog.Catalog, error) {
	api.mu.Lock()
	defer api.mu.Unlock()
	if err := api.load(ctx); err != nil {
		return catalog.Catalog{}, err
	}
	return api.cat.Clone(), nil
}

// mutate applies fn to the catalog and keeps its result unless fn fails.
func (api *catalogApi) mutate(ctx context.Context, fn func(catalog.Catalog) (catalog.Catalog, error)) (catalog.Catalog, error) {
	api.mu.Lock()
	defer api.mu.Unlock()
	if err := api.load(ctx); err != nil {
		return catalog.Catalog{}, err
	}
	cat, err := fn(api.cat)
	if err != nil {
		return catalog.Catalog{}, err
	}
	api.cat = cat
	return cat.Clone(), nil
}

// Handlers

func (api *catalogApi) retrieve(ctx echo.Context) error {
	cat, err := api.current(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cat.View())
}

func (api *catalogApi) addDay(ctx echo.Context) error {
	var data catalog.NewLabel
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLabel")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	reqCtx := ctx.Request().Context()
	cat, err := api.mutate(reqCtx, func(cat catalog.Catalog) (catalog.Catalog, error) {
		return api.svc.AddDay(reqCtx, cat, data.Label)
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, cat.View())
}

func (api *catalogApi) removeDay(ctx echo.Context) error {
	label, err := pathLabel(ctx)
	if err != nil {
		return err
	}

	reqCtx := ctx.Request().Context()
	cat, err := api.mutate(reqCtx, func(cat catalog.Catalog) (catalog.Catalog, error) {
		if !cat.HasDay(label) {
			return cat, errHttpNotFound
		}
		return api.svc.RemoveDay(reqCtx, cat, label)
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cat.View())
}

func (api *catalogApi) addSlot(ctx echo.Context) error {
	var data catalog.NewSlot
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSlot")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	reqCtx := ctx.Request().Context()
	cat, err := api.mutate(reqCtx, func(cat catalog.Catalog) (catalog.Catalog, error) {
		return api.svc.AddSlotRange(reqCtx, cat, data)
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, cat.View())
}

func (api *catalogApi) removeSlot(ctx echo.Context) error {
	label, err := pathLabel(ctx)
	if err != nil {
		return err
	}

	reqCtx := ctx.Request().Context()
	cat, err := api.mutate(reqCtx, func(cat catalog.Catalog) (catalog.Catalog, error) {
		if !cat.HasSlot(label) {
			return cat, errHttpNotFound
		}
		return api.svc.RemoveSlot(reqCtx, cat, label)
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cat.View())
}

// pathLabel returns the unescaped `:label` path param, e.g. "08:00%20-%2009:00".
func pathLabel(ctx echo.Context) (string, error) {
	label, err := url.PathUnescape(ctx.Param("label"))
	if err != nil {
		return "", errHttpNotFound
	}
	return label, nil
}
