package main

import (
	"github.com/trezcool/masomo-timetable/storage/database"
)

var migrationsRunFunc = database.RunMigrations // mockable

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return errNoDatabase
	}
	return migrationsRunFunc(cli.db, args[0], args[1:]...)
}
