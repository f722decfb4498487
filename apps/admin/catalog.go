package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-timetable/core"
	"github.com/trezcool/masomo-timetable/core/catalog"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	core.InitValidators(v, core.NewTranslator())
	return v
}

func (cli *commandLine) print(cat catalog.Catalog) {
	_, _ = fmt.Fprintf(cli.out, "Days:  %s\n", strings.Join(cat.Days(), ", "))
	_, _ = fmt.Fprintf(cli.out, "Slots: %s\n", strings.Join(cat.Slots(), ", "))
}

func (cli *commandLine) show(ctx context.Context) error {
	cat, err := cli.catSvc.Load(ctx)
	if err != nil {
		return err
	}
	cli.print(cat)
	return nil
}

func (cli *commandLine) mutate(ctx context.Context, fn func(cat catalog.Catalog) (catalog.Catalog, error)) error {
	cat, err := cli.catSvc.Load(ctx)
	if err != nil {
		return err
	}
	if cat, err = fn(cat); err != nil {
		return err
	}
	cli.print(cat)
	return nil
}

func (cli *commandLine) addDay(ctx context.Context, label string) error {
	nl := catalog.NewLabel{Label: label}
	if err := nl.Validate(validate); err != nil {
		return err
	}
	return cli.mutate(ctx, func(cat catalog.Catalog) (catalog.Catalog, error) {
		return cli.catSvc.AddDay(ctx, cat, nl.Label)
	})
}

func (cli *commandLine) removeDay(ctx context.Context, label string) error {
	return cli.mutate(ctx, func(cat catalog.Catalog) (catalog.Catalog, error) {
		if !cat.HasDay(label) {
			return cat, errors.Errorf("unknown day %q", label)
		}
		return cli.catSvc.RemoveDay(ctx, cat, label)
	})
}

func (cli *commandLine) addSlot(ctx context.Context, ns catalog.NewSlot) error {
	if err := ns.Validate(validate); err != nil {
		return err
	}
	return cli.mutate(ctx, func(cat catalog.Catalog) (catalog.Catalog, error) {
		return cli.catSvc.AddSlotRange(ctx, cat, ns)
	})
}

func (cli *commandLine) removeSlot(ctx context.Context, label string) error {
	return cli.mutate(ctx, func(cat catalog.Catalog) (catalog.Catalog, error) {
		if !cat.HasSlot(label) {
			return cat, errors.Errorf("unknown time slot %q", label)
		}
		return cli.catSvc.RemoveSlot(ctx, cat, label)
	})
}
