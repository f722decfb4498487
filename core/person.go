package core

// Person identifies whoever a log entry or a notification is about.
type Person struct {
	ID    string `json:"id" validate:"required,notblank"`
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
}
