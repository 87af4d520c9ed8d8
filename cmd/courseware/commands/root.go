// Package commands implements the CLI commands for courseware.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/courseware/internal/app"
	"go.trai.ch/courseware/internal/build"
	"go.trai.ch/courseware/internal/engine/resource"
)

// CLI represents the command line interface for courseware.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	List(ctx context.Context, name string, opts app.ListOptions) error
	Get(ctx context.Context, name, id string) error
	Create(ctx context.Context, name string, body []byte) error
	Update(ctx context.Context, name, id string, body []byte) error
	Delete(ctx context.Context, name, id string) error

	Login(ctx context.Context, token string) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) (app.AuthStatus, error)

	Watch(ctx context.Context, opts app.WatchOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "courseware",
		Short:         "Manage the training catalog of the LMS backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	// Read before the command tree runs; declared here so parsing accepts them.
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to courseware.yaml (default: search upward from the working directory)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Write log records as JSON")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	for _, d := range []resource.Descriptor{
		resource.CategoriesDescriptor,
		resource.ClientsDescriptor,
		resource.CoursesDescriptor,
		resource.PedagogiesDescriptor,
	} {
		rootCmd.AddCommand(c.newResourceCmd(d))
	}
	rootCmd.AddCommand(c.newAuthCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// SetInput sets the stream the login prompt reads from. Used for testing.
func (c *CLI) SetInput(in io.Reader) {
	c.rootCmd.SetIn(in)
}
