package mailrelay

import (
	"errors"
	"fmt"
)

// ErrNotConfigured means the service, template or public key is missing.
var ErrNotConfigured = errors.New("mail relay is not configured (service id, template id and public key are required)")

func IsNotConfigured(err error) bool {
	return errors.Is(err, ErrNotConfigured)
}

// SendError reports a non-200 answer from the relay.
type SendError struct {
	Status int
	Body   string
}

func (e *SendError) Error() string {
	if e == nil {
		return "mail relay error"
	}
	if e.Body == "" {
		return fmt.Sprintf("mail relay error (status %d)", e.Status)
	}
	return fmt.Sprintf("mail relay error (status %d): %s", e.Status, e.Body)
}

func IsSendError(err error) bool {
	var e *SendError
	return errors.As(err, &e)
}
