package dig_container

import (
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/masomo-timetable/apps/api/echo"
	"github.com/trezcool/masomo-timetable/core"
	"github.com/trezcool/masomo-timetable/core/catalog"
	"github.com/trezcool/masomo-timetable/core/reminder"
	"github.com/trezcool/masomo-timetable/core/timetable"
	emailsvc "github.com/trezcool/masomo-timetable/services/email"
	logsvc "github.com/trezcool/masomo-timetable/services/logger"
	"github.com/trezcool/masomo-timetable/storage/database"
	dummydb "github.com/trezcool/masomo-timetable/storage/database/dummy"
	sqlxrepos "github.com/trezcool/masomo-timetable/storage/database/sqlx"
)

type (
	DBLoggerParam struct {
		dig.In
		Logger core.Logger `name:"dbLogger"`
	}

	// Storage bundles the adapters of the configured storage driver.
	// DB is nil with the in-memory driver.
	Storage struct {
		dig.Out
		DB       *sqlx.DB
		Settings catalog.Store
		Lectures timetable.Repository
	}

	serverParams struct {
		dig.In
		Conf         *core.Config
		Logger       core.Logger
		Validate     *validator.Validate
		Translator   ut.Translator
		CatalogSvc   catalog.Service
		TimetableSvc timetable.Service
		ReminderSvc  reminder.Service
	}
)

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newStorage(conf *core.Config, loggerParam DBLoggerParam) Storage {
	if !conf.UsePostgres() {
		db, _ := dummydb.Open()
		return Storage{Settings: dummydb.NewSettingsStore(db), Lectures: dummydb.NewLectureRepository(db)}
	}

	setUp := func() (*sqlx.DB, error) {
		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, err
		}
		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}
		if err = database.Migrate(db); err != nil {
			return nil, err
		}
		return db, nil
	}

	db, err := setUp()
	if err != nil {
		loggerParam.Logger.Fatal("setting up database: "+err.Error(), err)
	}
	return Storage{DB: db, Settings: sqlxrepos.NewSettingsStore(db), Lectures: sqlxrepos.NewLectureRepository(db)}
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug {
		return emailsvc.NewConsoleService(log.New(os.Stdout, "MAIL : ", log.LstdFlags), logger, conf)
	}
	return emailsvc.NewSendgridService(logger, conf)
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	return validate
}

func newCatalogService(conf *core.Config, store catalog.Store, logger core.Logger) catalog.Service {
	defaults := catalog.New(conf.Timetable.Days, conf.Timetable.Slots)
	return catalog.NewService(store, logger, defaults, conf.Timetable.PersistTimeout)
}

func newServer(p serverParams) *echoapi.Server {
	return echoapi.NewServer(p.Conf, p.Logger, echoapi.Deps{
		Validate:     p.Validate,
		Translator:   p.Translator,
		CatalogSvc:   p.CatalogSvc,
		TimetableSvc: p.TimetableSvc,
		ReminderSvc:  p.ReminderSvc,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newStorage))
	must(c.Provide(newEmailService))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(newCatalogService))
	must(c.Provide(timetable.NewService))
	must(c.Provide(reminder.NewService))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
