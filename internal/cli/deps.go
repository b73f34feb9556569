package cli

import (
	"io"
	"os"

	"github.com/jonboulle/clockwork"

	"github.com/xolan/tock/internal/service"
)

// Deps contains all dependencies for CLI operations
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)
	Clock  clockwork.Clock

	// Services
	Services *service.Services
}

// NewDeps creates a new Deps with the given services and the process streams
func NewDeps(services *service.Services) *Deps {
	return &Deps{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Stdin:    os.Stdin,
		Exit:     os.Exit,
		Clock:    clockwork.NewRealClock(),
		Services: services,
	}
}
