package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/masomo-timetable/core/catalog"
)

var (
	errHelp       = errors.New("help provided")
	errNoDatabase = errors.New("migrate requires the postgres storage driver")
)

type commandLine struct {
	db     *sqlx.DB // nil with the in-memory storage driver
	catSvc catalog.Service
	out    io.Writer
}

func (cli *commandLine) printUsage() {
	_, _ = fmt.Fprintln(cli.out, "Usage:")
	_, _ = fmt.Fprintln(cli.out, "  show                                 - print the days and time slots of the timetable")
	_, _ = fmt.Fprintln(cli.out, "  addday -label LABEL                  - add a day")
	_, _ = fmt.Fprintln(cli.out, "  removeday -label LABEL               - remove a day (its lectures are kept)")
	_, _ = fmt.Fprintln(cli.out, "  addslot -start HH:MM -end HH:MM      - add a time slot")
	_, _ = fmt.Fprintln(cli.out, "  removeslot -label \"HH:MM - HH:MM\"    - remove a time slot (its lectures are kept)")
	_, _ = fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]               - run database migrations (up, down, status, ...)")
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "show":
		return cli.show(ctx)
	case "addday", "removeday", "removeslot":
		cmd := cli.newFlagSet(args[1])
		label := cmd.String("label", "", "The day or time slot label.")
		if err := cmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if strings.TrimSpace(*label) == "" {
			cmd.Usage()
			return errHelp
		}
		switch args[1] {
		case "addday":
			return cli.addDay(ctx, *label)
		case "removeday":
			return cli.removeDay(ctx, *label)
		default:
			return cli.removeSlot(ctx, *label)
		}
	case "addslot":
		cmd := cli.newFlagSet(args[1])
		start := cmd.String("start", "", "The start time of the slot, HH:MM.")
		end := cmd.String("end", "", "The end time of the slot, HH:MM.")
		if err := cmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.addSlot(ctx, catalog.NewSlot{StartTime: *start, EndTime: *end})
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}
