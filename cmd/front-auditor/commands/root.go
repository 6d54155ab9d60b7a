package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"front-auditor/internal/config"
	"front-auditor/internal/console"
	"front-auditor/internal/menu"
	"front-auditor/internal/operation"
	"front-auditor/internal/portal"
	"front-auditor/internal/printer"
	"front-auditor/lib/restyutil"
	"front-auditor/lib/telemetry"

	"github.com/spf13/cobra"
)

const serviceName = "front-auditor"

var (
	verbose    bool
	configPath string
)

func init() {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to config.json (defaults to the executable directory)")
}

var rootCmd = &cobra.Command{
	Use:          serviceName,
	Short:        "front-auditor automates report downloads and printing from the Front 2 Go portal.",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(verbose)

		ctx := cmd.Context()
		tel, err := telemetry.SetupFromEnv(ctx, serviceName)
		if err != nil {
			return fmt.Errorf("setup telemetry: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			tel.Shutdown(shutdownCtx)
		}()

		return run(ctx, telemetry.SlogAPI{})
	},
}

func run(ctx context.Context, tel telemetry.API) error {
	env, err := config.LoadEnvironment()
	if err != nil {
		return fmt.Errorf("load environment: %w", err)
	}

	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	store := config.NewStore(path, telemetry.NewScopedAPI("config", tel))
	err = store.Load()
	if err != nil {
		// defaults stay usable in memory
		tel.ReportWarning("main.load_config", err)
	}

	var dump restyutil.InstrumentOutput
	if env.HTTPDumpDir != "" {
		output, err := restyutil.NewFilesystemOutput(env.HTTPDumpDir)
		if err != nil {
			return fmt.Errorf("http dump dir: %w", err)
		}
		dump = output
	}

	client, err := portal.NewClient(portal.ClientOptions{
		Environment: env,
		Store:       store,
		Telemetry:   telemetry.NewScopedAPI("portal", tel),
		Dump:        dump,
	})
	if err != nil {
		return fmt.Errorf("create portal client: %w", err)
	}

	prompter := console.NewTerminalPrompter(os.Stdin, os.Stdout)
	manager, err := operation.NewManager(operation.ManagerOptions{
		Schema:      menu.DefaultSchema(),
		Portal:      client,
		Printer:     printer.NewCommandPrinter(env.PrinterCommand, telemetry.NewScopedAPI("printer", tel)),
		Prompter:    prompter,
		Session:     store,
		Environment: env,
		Telemetry:   telemetry.NewScopedAPI("operation", tel),
	})
	if err != nil {
		return fmt.Errorf("create operation manager: %w", err)
	}

	navigator := menu.NewNavigator(menu.NavigatorOptions{
		Operations: manager,
		Session:    store,
		Prompter:   prompter,
		Reporter:   console.NewReporter(os.Stdout),
		Telemetry:  telemetry.NewScopedAPI("menu", tel),
	})
	return navigator.Run(ctx)
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
