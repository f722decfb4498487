package main

import (
	"context"
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/masomo-timetable/core"
	"github.com/trezcool/masomo-timetable/core/catalog"
	logsvc "github.com/trezcool/masomo-timetable/services/logger"
	"github.com/trezcool/masomo-timetable/storage/database"
	dummydb "github.com/trezcool/masomo-timetable/storage/database/dummy"
	sqlxrepos "github.com/trezcool/masomo-timetable/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()
	std := log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(std, conf)
	defer logger.Close()

	// set up storage
	var (
		db    *sqlx.DB
		store catalog.Store
	)
	if conf.UsePostgres() {
		var err error
		if db, err = database.Open(conf); err != nil {
			logger.Fatal("opening database: "+err.Error(), err)
		}
		defer func() { _ = db.Close() }()
		store = sqlxrepos.NewSettingsStore(db)
	} else {
		mem, _ := dummydb.Open()
		store = dummydb.NewSettingsStore(mem)
		logger.Warn("using the in-memory storage driver: changes are lost on exit")
	}

	// start CLI
	defaults := catalog.New(conf.Timetable.Days, conf.Timetable.Slots)
	cli := commandLine{
		db:     db,
		catSvc: catalog.NewSyncService(store, logger, defaults, conf.Timetable.PersistTimeout),
		out:    os.Stdout,
	}
	if err := cli.run(context.Background(), os.Args); err != nil {
		if err != errHelp {
			std.Printf("\nerror: %s\n", err)
		}
		logger.Close()
		os.Exit(1)
	}
}
