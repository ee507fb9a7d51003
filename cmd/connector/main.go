package main

import (
	"fmt"
	"log"
	"os"

	"github.com/guseggert/pwremote/connector"
	"github.com/guseggert/pwremote/internal/logging"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "connector",
		Usage:     "connect to a Playwright browser server, visit a page and take a screenshot",
		ArgsUsage: "[endpoint]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Usage:   "The page to navigate to.",
				Value:   connector.DefaultTargetURL,
				EnvVars: []string{"PWREMOTE_URL"},
			},
			&cli.StringFlag{
				Name:    "screenshot",
				Usage:   "Where to write the screenshot. Overwritten on each run.",
				Value:   connector.DefaultScreenshotPath,
				EnvVars: []string{"PWREMOTE_SCREENSHOT"},
			},
			&cli.StringFlag{
				Name:    "browser",
				Usage:   "Browser engine the server was launched with. One of [chromium,firefox,webkit].",
				Value:   "chromium",
				EnvVars: []string{"PWREMOTE_BROWSER"},
			},
			&cli.BoolFlag{
				Name:    "preflight",
				Usage:   "Check once that the endpoint accepts WebSocket connections before connecting.",
				EnvVars: []string{"PWREMOTE_PREFLIGHT"},
			},
			&cli.DurationFlag{
				Name:  "preflight-timeout",
				Usage: "Timeout for the preflight check.",
				Value: connector.DefaultPreflightTimeout,
			},
			&cli.BoolFlag{
				Name:    "install-driver",
				Usage:   "Install the playwright driver before connecting.",
				EnvVars: []string{"PWREMOTE_INSTALL_DRIVER"},
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

			endpoint := connector.EndpointFromArgs(cliCtx.Args().Slice())

			if cliCtx.Bool("preflight") {
				err := connector.Preflight(cliCtx.Context, logger, endpoint, cliCtx.Duration("preflight-timeout"))
				if err != nil {
					return fmt.Errorf("preflight: %w", err)
				}
			}

			session := connector.NewSession(
				endpoint,
				connector.WithLogger(logger),
				connector.WithTargetURL(cliCtx.String("url")),
				connector.WithScreenshotPath(cliCtx.String("screenshot")),
			)
			driver := &connector.PlaywrightDriver{
				Log:     logger.Named("playwright"),
				Browser: cliCtx.String("browser"),
				Install: cliCtx.Bool("install-driver"),
			}
			_, err = session.Run(driver)
			return err
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
