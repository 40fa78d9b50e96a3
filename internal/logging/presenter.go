package logging

import (
	"errors"
	"fmt"

	taskerrors "taskdeck/cli/internal/errors"
)

// PresentError formats err as one masked line prefixed by action. The kind
// prefix of a typed error is dropped; the rest of the chain is kept.
func PresentError(action string, err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	var e *taskerrors.E
	if errors.As(err, &e) {
		msg = e.Message
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
	}
	return fmt.Sprintf("%s: %s", action, Mask(msg))
}
