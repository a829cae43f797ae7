package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/server"
)

type serveOptions struct {
	Port string
	Host string
}

func addServe(topLevel *cobra.Command) {
	o := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket service.",
		Long: `Run the HTTP and WebSocket service.

Configuration comes from the environment (PORT, HOST, LOG_LEVEL, BOOT_*,
SHELL_*, CATALOG_DIR, PERSONA_STORE_*). Flags override PORT and HOST.`,
		Example: `
server serve
server serve --port 9000 --host 127.0.0.1
BOOT_SKIP=true LOG_DEV=true server serve
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), o)
		},
	}

	cmd.Flags().StringVar(&o.Port, "port", "", "listen port, overrides PORT")
	cmd.Flags().StringVar(&o.Host, "host", "", "listen host, overrides HOST")

	topLevel.AddCommand(cmd)
}

func (o *serveOptions) apply(cfg *config.Config) {
	if o.Port != "" {
		cfg.Server.Port = o.Port
	}
	if o.Host != "" {
		cfg.Server.Host = o.Host
	}
}

func runServe(ctx context.Context, o *serveOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	o.apply(cfg)

	srv, err := server.NewServer(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case <-ctx.Done():
		srv.Logger().Info("Shutting down gracefully")
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		if shutdownErr := srv.Shutdown(context.Background()); err == nil {
			err = shutdownErr
		}
		return err
	}
}
