package bot

import (
	"errors"
	"fmt"
)

// ErrNoBots is returned when a query names no bot and none are
// registered.
var ErrNoBots = errors.New("there are no bots created currently")

// MissingBotError is returned when a query names a bot that does not
// exist.
type MissingBotError struct {
	Name string
}

func (e *MissingBotError) Error() string {
	return fmt.Sprintf("bot %q does not exist", e.Name)
}
