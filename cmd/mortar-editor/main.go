package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"mortarEditor/internal/config"
	"mortarEditor/internal/fileio"
	"mortarEditor/internal/logging"
	"mortarEditor/internal/schema"
	"mortarEditor/internal/session"
	remote "mortarEditor/internal/sync"
	"mortarEditor/internal/telemetry"

	"github.com/spf13/cobra"
)

type options struct {
	settingsPath string
	api          string
	file         string
	exportDir    string
}

// app bundles what every command needs once settings are loaded.
type app struct {
	cfg       *config.Manager
	logger    *slog.Logger
	validator *schema.Validator
	closers   []func(context.Context) error
}

func newApp(ctx context.Context, opts *options) (*app, error) {
	path := opts.settingsPath
	if path == "" {
		var err error
		if path, err = config.GetDefaultConfigPath(); err != nil {
			return nil, err
		}
	}

	cfg := config.NewManager(path)
	if err := cfg.Load(); err != nil {
		return nil, err
	}
	settings := cfg.Settings()

	a := &app{cfg: cfg}
	logger, closer, err := logging.OpenFile(cfg.GetLogPath(), settings.LogLevel)
	if err != nil {
		// The editor still works without a log file.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		logger = logging.Discard()
	} else {
		a.closers = append(a.closers, func(context.Context) error { return closer.Close() })
	}
	a.logger = logger
	slog.SetDefault(logger)

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
	} else {
		a.closers = append([]func(context.Context) error{shutdown}, a.closers...)
	}

	if a.validator, err = schema.NewValidator(); err != nil {
		a.Close(ctx)
		return nil, err
	}

	if opts.api == "" {
		opts.api = settings.API
	}
	if opts.exportDir == "" {
		opts.exportDir = settings.ExportDir
	}

	logger.Info("mortar editor starting", "settings", path, "api", opts.api)
	return a, nil
}

func (a *app) Close(ctx context.Context) {
	for _, c := range a.closers {
		if err := c(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: shutdown: %v\n", err)
		}
	}
}

func (a *app) remoteClient(address string) (*remote.Client, error) {
	return remote.NewClient(address,
		remote.WithTimeout(a.cfg.Settings().RequestTimeout),
		remote.WithLogger(a.logger),
	)
}

func (a *app) newSession(opts *options) (*session.Controller, error) {
	sessOpts := []session.Option{
		session.WithLogger(a.logger),
		session.WithValidator(a.validator),
		session.WithExporter(fileio.NewExporter(opts.exportDir)),
	}
	if opts.api != "" {
		client, err := a.remoteClient(opts.api)
		if err != nil {
			return nil, err
		}
		sessOpts = append(sessOpts, session.WithRemote(client))
	}
	return session.New(sessOpts...), nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "mortar-editor",
		Short: "Edit Mortar host configurations",
		Long: `Edit the list of Mortar hosts, their platforms and file filters.

Without --api the editor works on local files: import a .json file and
export the result as mortar-config.json. With --api the configuration is
loaded from and saved to http://<address>:1337/config.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEditor(cmd.Context(), opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.settingsPath, "settings", "", "settings file (default ~/.config/mortar-editor/settings.yaml)")
	flags.StringVar(&opts.api, "api", "", "address of a Mortar instance; enables remote mode")
	flags.StringVarP(&opts.file, "file", "f", "", "configuration file to open")
	flags.StringVar(&opts.exportDir, "export-dir", "", "directory for mortar-config.json exports")

	cmd.AddCommand(
		newPullCmd(opts),
		newPushCmd(opts),
		newValidateCmd(opts),
		newFmtCmd(opts),
		newListCmd(opts),
		newSchemaCmd(),
	)
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(exitCode(err))
	}
}
