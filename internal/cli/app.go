package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/passkeeper/internal/logging"
	"github.com/dmitrijs2005/passkeeper/internal/services"
)

type App struct {
	authService   services.AuthService
	secretService services.SecretService
	userName      string
	reader        *bufio.Reader
	out           io.Writer
	log           logging.Logger
}

// NewApp builds an App reading commands from in and printing to out.
func NewApp(as services.AuthService, ss services.SecretService, in io.Reader, out io.Writer, log logging.Logger) *App {
	return &App{
		authService:   as,
		secretService: ss,
		reader:        bufio.NewReader(in),
		out:           out,
		log:           log.With("component", "cli"),
	}
}

// Run blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	info(a.out, "Welcome to PassKeeper (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s) ", a.userName)
}

// report prints the message for err and logs errors that are not the
// user's doing.
func (a *App) report(ctx context.Context, err error) error {
	failure(a.out, Message(err))
	if isUnexpected(err) {
		a.log.Error(ctx, "command failed", "error", err)
	}
	return err
}
