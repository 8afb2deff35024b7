// Package cli implements the shootcal command tree.
package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/shootcal/internal/service"
	"github.com/spf13/cobra"
)

// Server is the HTTP surface started by "shootcal serve".
type Server interface {
	ListenAndServe(ctx context.Context, addr string) error
}

// App holds the services used by CLI commands.
type App struct {
	Projects    service.ProjectService
	Calendars   service.CalendarService
	Versions    service.VersionService
	Rules       service.RuleService
	Definitions service.DefinitionService
	Access      service.AccessService
	Import      service.ImportService

	Server     Server
	ServerAddr string

	// Owner is the user id the CLI acts as.
	Owner string

	// IsInteractive reports whether stdin is a terminal. Forms and the
	// calendar browser are only offered when it returns true.
	IsInteractive func() bool

	// Now defaults to time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "shootcal" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "shootcal",
		Short:         "Film production shooting calendars",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newProjectCmd(app),
		newCalendarCmd(app),
		newVersionCmd(app),
		newRulesCmd(app),
		newDefCmd(app),
		newShareCmd(app),
		newImportCmd(app),
	)

	return root
}
