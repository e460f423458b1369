// Package contact validates the portfolio contact form.
package contact

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Fields lists the form fields in display order.
var Fields = []Field{FieldName, FieldEmail, FieldMessage}

const (
	MsgNameTooShort    = "Name must be at least 2 characters"
	MsgInvalidEmail    = "Please enter a valid email"
	MsgMessageTooShort = "Message must be at least 10 characters"

	MsgSent       = "Message sent successfully! I will get back to you soon."
	MsgSendFailed = "Failed to send message. Please try again or contact me directly."
)

const (
	minNameLen    = 2
	minMessageLen = 10
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Form struct {
	Name    string
	Email   string
	Message string
}

// Errors maps each invalid field to its inline message. A nil or empty
// Errors means the form may be submitted.
type Errors map[Field]string

func (e Errors) OK() bool { return len(e) == 0 }

// Validate checks every field; it never stops at the first failure so each
// field can show its own message.
func Validate(f Form) Errors {
	errs := Errors{}
	if utf8.RuneCountInString(strings.TrimSpace(f.Name)) < minNameLen {
		errs[FieldName] = MsgNameTooShort
	}
	if !emailRe.MatchString(f.Email) {
		errs[FieldEmail] = MsgInvalidEmail
	}
	if utf8.RuneCountInString(strings.TrimSpace(f.Message)) < minMessageLen {
		errs[FieldMessage] = MsgMessageTooShort
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Params builds the mail template parameters for a validated form.
func Params(f Form, toName string) map[string]string {
	return map[string]string{
		"from_name":  f.Name,
		"from_email": f.Email,
		"message":    f.Message,
		"to_name":    toName,
	}
}
