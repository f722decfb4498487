package reminder

import (
	"net/mail"
	"strings"
	texttmpl "text/template"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-timetable/core"
	"github.com/trezcool/masomo-timetable/core/status"
)

var digestTmpl = texttmpl.Must(texttmpl.New("digest").Funcs(texttmpl.FuncMap{
	"date":  func(t time.Time) string { return t.Format("Mon 02 Jan 2006 15:04") },
	"upper": strings.ToUpper,
}).Parse(`Hello {{.Name}},

You still have to hand in:
{{range .Items}}- [{{upper (print .Status)}}] {{.Title}}{{if .Subject}} ({{.Subject}}){{end}}, due {{date .DueDate}}
{{end}}
Please hand them in as soon as possible.
`))

type (
	// Request asks for a digest of the assignments Student has not handed in yet.
	Request struct {
		Student     core.Person         `json:"student" validate:"required"`
		Assignments []status.Assignment `json:"assignments"`
	}

	// Digest is what was (or would have been) mailed to the student.
	Digest struct {
		Student core.Person                `json:"student"`
		Items   []status.StudentAssignment `json:"items"`
		Sent    bool                       `json:"sent"`
	}

	Service interface {
		Send(req Request, now time.Time) (Digest, error)
	}

	service struct {
		mailSvc core.EmailService
	}
)

var _ Service = (*service)(nil) // interface compliance check

func NewService(mailSvc core.EmailService) Service {
	return &service{mailSvc: mailSvc}
}

func (r *Request) Validate(validate *validator.Validate) error {
	r.Student.ID = core.CleanString(r.Student.ID)
	r.Student.Name = core.CleanString(r.Student.Name)
	r.Student.Email = core.CleanString(r.Student.Email, true /* lower */)
	return validate.Struct(r)
}

// Send mails the student a digest of their due-soon and overdue assignments.
// Nothing is sent when there is nothing to remind or the student has no email.
func (svc *service) Send(req Request, now time.Time) (Digest, error) {
	dgst := Digest{
		Student: req.Student,
		Items:   status.Reminders(req.Assignments, req.Student.ID, now),
	}
	if dgst.Items == nil {
		dgst.Items = make([]status.StudentAssignment, 0)
	}
	if len(dgst.Items) == 0 || req.Student.Email == "" {
		return dgst, nil
	}

	msg, err := NewMessage(dgst)
	if err != nil {
		return dgst, err
	}
	svc.mailSvc.SendMessages(msg)
	dgst.Sent = true
	return dgst, nil
}

// NewMessage builds the email of a digest.
func NewMessage(dgst Digest) (*core.EmailMessage, error) {
	name := dgst.Student.Name
	if name == "" {
		name = dgst.Student.ID
	}
	msg := &core.EmailMessage{
		To:           []mail.Address{{Name: dgst.Student.Name, Address: dgst.Student.Email}},
		Subject:      "Assignments to hand in",
		Template:     digestTmpl,
		TemplateData: map[string]interface{}{"Name": name, "Items": dgst.Items},
	}
	if err := msg.Render(); err != nil {
		return nil, errors.Wrap(err, "rendering reminder")
	}
	return msg, nil
}
