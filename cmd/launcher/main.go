package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guseggert/pwremote/internal/logging"
	"github.com/guseggert/pwremote/launcher"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "launcher",
		Usage: "start a Playwright browser server and print its WebSocket endpoint",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "command",
				Usage:   "The playwright CLI to run. Bare names are looked up on PATH, then in node_modules/.bin.",
				Value:   launcher.DefaultCommand,
				EnvVars: []string{"PWREMOTE_COMMAND"},
			},
			&cli.StringFlag{
				Name:    "browser",
				Usage:   "Browser engine for the server. One of [chromium,firefox,webkit].",
				Value:   launcher.DefaultBrowser,
				EnvVars: []string{"PWREMOTE_BROWSER"},
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Server config file, passed to the playwright CLI unmodified.",
				Value:   launcher.DefaultConfig,
				EnvVars: []string{"PWREMOTE_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "status-addr",
				Usage:   "If set, serve the launcher status and captured endpoint over HTTP on this address.",
				EnvVars: []string{"PWREMOTE_STATUS_ADDR"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Diagnostic log level, written to stderr.",
				Value:   "warn",
				EnvVars: []string{"PWREMOTE_LOG_LEVEL"},
			},
		},
		Action: func(cliCtx *cli.Context) error {
			logger, err := logging.New(cliCtx.String("log-level"))
			if err != nil {
				return err
			}
			defer logger.Sync()

			sup := launcher.New(
				launcher.WithLogger(logger),
				launcher.WithCommand(cliCtx.String("command")),
				launcher.WithBrowser(cliCtx.String("browser")),
				launcher.WithConfig(cliCtx.String("config")),
			)

			if addr := cliCtx.String("status-addr"); addr != "" {
				status := launcher.NewStatusServer(logger, sup, addr)
				err := status.Start()
				if err != nil {
					return fmt.Errorf("starting status server: %w", err)
				}
				defer func() {
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					if err := status.Stop(ctx); err != nil {
						logger.Debugf("error stopping status server: %s", err)
					}
				}()
			}

			ctx, stop := signal.NotifyContext(cliCtx.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			res, err := sup.Run(ctx)
			if err != nil {
				return err
			}
			if !res.Interrupted && res.ExitCode != 0 {
				return cli.Exit(fmt.Sprintf("server exited with code %d", res.ExitCode), res.ExitCode)
			}
			return nil
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
