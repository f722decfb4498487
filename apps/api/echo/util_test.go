package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-timetable/core"
	"github.com/trezcool/masomo-timetable/core/catalog"
	"github.com/trezcool/masomo-timetable/core/reminder"
	"github.com/trezcool/masomo-timetable/core/timetable"
	emailsvc "github.com/trezcool/masomo-timetable/services/email"
	dummydb "github.com/trezcool/masomo-timetable/storage/database/dummy"
)

// Monday 4 March 2024, 09:30 UTC
var testNow = time.Date(2024, time.March, 4, 9, 30, 0, 0, time.UTC)

type loggerMock struct {
	errors []string
}

func (l *loggerMock) Debug(string, ...interface{}) {}
func (l *loggerMock) Info(string, ...interface{})  {}
func (l *loggerMock) Warn(string, ...interface{})  {}
func (l *loggerMock) Fatal(string, ...interface{}) {}
func (l *loggerMock) Error(msg string, _ ...interface{}) {
	l.errors = append(l.errors, msg)
}

type testApp struct {
	*Server
	settings catalog.Store
	lectures timetable.Repository
	mailer   *emailsvc.ConsoleServiceMock
	logger   *loggerMock
}

func setup(t *testing.T) *testApp {
	t.Helper()

	origNow := nowFunc
	nowFunc = func() time.Time { return testNow }
	t.Cleanup(func() { nowFunc = origNow })

	conf := &core.Config{
		TestMode:         true,
		AppName:          "Masomo",
		DefaultFromEmail: mail.Address{Name: "Masomo", Address: "noreply@masomo.test"},
	}
	logger := &loggerMock{}

	db, err := dummydb.Open()
	require.NoError(t, err)
	settings := dummydb.NewSettingsStore(db)
	lectures := dummydb.NewLectureRepository(db)
	mailer := emailsvc.NewConsoleServiceMock(logger, conf)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	defaults := catalog.New(
		[]string{"Monday", "Tuesday"},
		[]string{"08:00 - 09:00", "09:00 - 10:00", "10:00 - 11:00"},
	)
	srv := NewServer(conf, logger, Deps{
		Validate:     validate,
		Translator:   translator,
		CatalogSvc:   catalog.NewSyncService(settings, logger, defaults, time.Second),
		TimetableSvc: timetable.NewService(lectures, logger),
		ReminderSvc:  reminder.NewService(mailer),
	})
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	return &testApp{Server: srv, settings: settings, lectures: lectures, mailer: mailer, logger: logger}
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     string
	wantCode int
	wantData string
}

func (app *testApp) do(method, path, body string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	buf.WriteString(body)
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func (app *testApp) run(t *testing.T, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			rec := app.do(method, tt.path, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.wantData != "" {
				assert.JSONEq(t, tt.wantData, rec.Body.String())
			}
		})
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(strings.NewReader(rec.Body.String())).Decode(v))
}
