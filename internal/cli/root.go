package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/youruser/comunicado/internal/config"
	imagepkg "github.com/youruser/comunicado/internal/image"
	"github.com/youruser/comunicado/internal/util"
)

const appName = "comunicado"

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion records build information injected via ldflags.
func SetVersion(v, c, d string) {
	if v != "" {
		version = v
	}
	commit = c
	date = d
}

// rootOptions is the state shared by every subcommand.
type rootOptions struct {
	verbose    bool
	configPath string
	cfg        config.Config
}

// Execute runs the CLI until the command finishes or ctx is canceled.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	o := &rootOptions{}

	root := &cobra.Command{
		Use:           appName,
		Short:         "Comunicado renders branded announcement images",
		Long:          `Comunicado composes announcement text onto a fixed brand template and writes the result as a JPEG, either on demand over HTTP or from the command line.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(o.configPath)
			if err != nil {
				return err
			}
			o.cfg = cfg

			level := parseLevel(cfg.LogLevel)
			if o.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
			return nil
		},
	}

	root.SetVersionTemplate(versionString() + "\n")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&o.configPath, "config", "c", "", "path to a YAML config file")

	root.AddCommand(newServeCommand(o))
	root.AddCommand(newRenderCommand(o))
	root.AddCommand(newVersionCommand())
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
		},
	}
}

func versionString() string {
	s := appName + " " + version
	if commit != "" {
		s += "\ncommit: " + commit
	}
	if date != "" {
		s += "\nbuilt: " + date
	}
	return s
}

// newCompositor loads fonts and the template named by cfg.
func newCompositor(ctx context.Context, cfg config.Config, logger *log.Logger) (*imagepkg.Compositor, error) {
	fonts, err := imagepkg.LoadFonts(cfg.Assets.FontBold, cfg.Assets.FontRegular)
	if err != nil {
		return nil, err
	}
	return imagepkg.NewCompositor(ctx, imagepkg.Options{
		Fonts:     fonts,
		Template:  cfg.Assets.Template,
		OutputDir: cfg.OutputDir,
		Client:    util.DefaultClient,
		Logger:    logger,
	})
}
