package cli

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/sdejongh/photopuller/pkg/config"
	"github.com/sdejongh/photopuller/pkg/engine"
	"github.com/sdejongh/photopuller/pkg/toolserver"
)

// ServeFlags holds serve command flags
type ServeFlags struct {
	LogFile   string
	LogFormat string
	LogLevel  string
}

var serveFlags ServeFlags

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve scan and copy tools over stdin/stdout",
		Long: `Run a JSON-RPC 2.0 tool server on stdin and stdout, one request per line,
so an agent can scan, adjust exclusions and copy through a single session.
Logs never go to stdout; use --log-file or --verbose for stderr.`,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&serveFlags.LogFormat, "log-format", "", "log format: text, json")
	cmd.Flags().StringVar(&serveFlags.LogLevel, "log-level", "", "log level: debug, info, warn, error")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	cfg, err := loadConfig()
	if err != nil {
		return errors.Errorf("failed to load config: %w", err)
	}
	applyServeFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := createLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return errors.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()
	logger = loggerFor(logger, "serve")

	server := toolserver.New(engine.NewCoordinator(nil, logger), logger, Version)
	if err := server.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
		return err
	}
	return nil
}

func applyServeFlags(cfg *config.Config) {
	if serveFlags.LogFile != "" {
		cfg.Logging.Enabled = true
		cfg.Logging.File = serveFlags.LogFile
	}
	if serveFlags.LogFormat != "" {
		cfg.Logging.Format = serveFlags.LogFormat
	}
	if serveFlags.LogLevel != "" {
		cfg.Logging.Level = serveFlags.LogLevel
	}
	if globalFlags.Verbose {
		cfg.Logging.Enabled = true
	}
}
