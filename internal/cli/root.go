package cli

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/toyz/reflector/internal/config"
	"github.com/toyz/reflector/internal/utils"
)

// errReported is returned by commands that already printed their failures
var errReported = stderrors.New("failures reported")

// NewRootCommand builds the reflector command tree
func NewRootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   "reflector",
		Short: "Reflect annotated C++ headers into JSON mirrors",
		Long: `Reflector scans C++ headers for annotation markers (RClass, RField,
RMethod, RBody, REnum, REnumerator by default) and writes what it finds,
together with the synthesized accessors, as JSON.

Options are read from reflector.yaml in the working directory (or --config),
then REFLECTOR_* environment variables, then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./reflector.yaml)")

	root.AddCommand(
		newGenerateCommand(&configFile),
		newCleanCommand(&configFile),
		newConfigCommand(),
	)
	return root
}

// Execute runs the command line and returns the process exit code
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		if !stderrors.Is(err, errReported) {
			NewDiagnosticReporter(false).ReportError(err)
		}
		return 1
	}
	return 0
}

// loadCommandOptions binds the command's flags and loads the merged options
func loadCommandOptions(cmd *cobra.Command, configFile string) (*config.Options, error) {
	v := newViper()
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	return LoadOptions(v, configFile)
}

func newGenerateCommand(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate [paths...]",
		Aliases: []string{"gen"},
		Short:   "Reflect the given files and directories",
		Example: `  reflector generate include/
  reflector generate -r --database reflection.json src/
  reflector generate ./engine/... --output-dir build/mirrors`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadCommandOptions(cmd, *configFile)
			if err != nil {
				return err
			}

			diagnostics := utils.NewDiagnosticSystem(utils.LevelFor(opts.Quiet, opts.Verbose))
			reporter := NewDiagnosticReporter(opts.Verbose)
			diagnostics.Header("reflecting " + pluralize(len(args), "path"))

			g := NewGenerator(opts, diagnostics, reporter)
			if err := g.Run(cmd.Context(), Config{Paths: args, Options: opts}); err != nil {
				if s := g.GetSummary(); s.FilesFailed > 0 {
					diagnostics.Error("%s failed", pluralize(s.FilesFailed, "file"))
					return errReported
				}
				return err
			}
			return nil
		},
	}
	addOptionFlags(cmd.Flags())
	return cmd
}

func newCleanCommand(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [paths...]",
		Short: "Remove generated mirror files and the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadCommandOptions(cmd, *configFile)
			if err != nil {
				return err
			}
			diagnostics := utils.NewDiagnosticSystem(utils.LevelFor(opts.Quiet, opts.Verbose))

			if len(args) == 0 {
				args = []string{"."}
			}
			removed, err := NewCleaner(opts).CleanGeneratedFiles(args)
			for _, path := range removed {
				diagnostics.Verbose("Removed %s", path)
			}
			if err != nil {
				return err
			}
			diagnostics.PhaseItem("Removed %s", pluralize(len(removed), "file"))
			return nil
		},
	}
	addOptionFlags(cmd.Flags())
	return cmd
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
