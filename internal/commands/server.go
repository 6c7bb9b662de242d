package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ravenhammer-Research/freebsdnet/internal/api"
	"github.com/Ravenhammer-Research/freebsdnet/internal/config"
	"github.com/Ravenhammer-Research/freebsdnet/internal/log"
)

func CreateServerCommand() *ServerCommand {
	cmd := &ServerCommand{
		fs: flag.NewFlagSet("server", flag.ExitOnError),
	}

	cmd.fs.StringVar(&cmd.bindAddr, "bind", "", "Bind address for the API server (default: general.api_listen)")

	return cmd
}

type ServerCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	bindAddr string
}

func (c *ServerCommand) Name() string {
	return c.fs.Name()
}

func (c *ServerCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	if cfg, err := loadConfigIfPresent(ctx.ConfigPath); err != nil {
		return err
	} else {
		c.cfg = cfg
	}

	if c.bindAddr == "" {
		c.bindAddr = c.cfg.General.APIListen
	}

	return nil
}

func (c *ServerCommand) Run() error {
	log.Infof("Starting fibctl API server")
	log.Infof("Bind address: %s", c.bindAddr)
	log.Infof("Example: curl http://%s/api/v1/routes | jq", c.bindAddr)

	server := api.NewServer(c.bindAddr, c.ctx.Table)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		log.Infof("Received signal: %v", sig)
		log.Infof("Shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error during shutdown: %w", err)
		}

		log.Infof("Server stopped")
		return nil
	}
}
