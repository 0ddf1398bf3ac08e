// birdrelay watches a curated set of Twitter accounts through the v2
// filtered stream and forwards qualifying posts to a Telegram channel.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/parawatch/birdrelay/relay"
	"github.com/parawatch/birdrelay/telegram"
	"github.com/parawatch/birdrelay/twitter"
	"github.com/parawatch/birdrelay/util"

	"github.com/carlmjohnson/versioninfo"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	cli "github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("exiting", "err", err)
		os.Exit(1)
	}
}

func run(args []string) error {

	app := cli.App{
		Name:    "birdrelay",
		Usage:   "relays posts from watched accounts to a telegram channel",
		Version: versioninfo.Short(),
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:     "twitter-bearer-token",
			Usage:    "bearer token for the Twitter API v2",
			Required: true,
			EnvVars:  []string{"TWITTER_BEARER_TOKEN"},
		},
		&cli.StringFlag{
			Name:     "telegram-bot-token",
			Usage:    "token for the Telegram bot API",
			Required: true,
			EnvVars:  []string{"TELEGRAM_BOT_TOKEN"},
		},
		&cli.StringFlag{
			Name:     "telegram-chat-id",
			Usage:    "chat that receives forwarded posts",
			Required: true,
			EnvVars:  []string{"TELEGRAM_CHAT_ID"},
		},
		&cli.StringFlag{
			Name:    "telegram-dev-chat-id",
			Usage:   "chat that receives operational failure notices",
			EnvVars: []string{"TELEGRAM_DEV_CHAT_ID"},
		},
		&cli.StringFlag{
			Name:    "watch-list",
			Usage:   "path to the YAML file listing handles to watch",
			Value:   "watchlist.yaml",
			EnvVars: []string{"BIRDRELAY_WATCH_LIST"},
		},
		&cli.Int64Flag{
			Name:    "min-followers",
			Usage:   "only watch accounts with more followers than this",
			Value:   relay.DefaultMinFollowers,
			EnvVars: []string{"BIRDRELAY_MIN_FOLLOWERS"},
		},
		&cli.StringFlag{
			Name:    "metrics-listen",
			Usage:   "IP or address, and port, to listen on for metrics",
			Value:   ":3989",
			EnvVars: []string{"BIRDRELAY_METRICS_LISTEN"},
		},
	}

	app.Commands = []*cli.Command{
		runCmd,
	}

	return app.Run(args)
}

var runCmd = &cli.Command{
	Name:  "run",
	Usage: "sync stream rules and relay posts until the stream closes",
	Action: func(cctx *cli.Context) error {
		ctx := context.Background()
		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
		slog.SetDefault(logger)

		watchList, err := loadWatchList(cctx.String("watch-list"))
		if err != nil {
			return err
		}

		tw := &twitter.Client{
			BearerToken: cctx.String("twitter-bearer-token"),
			UserAgent:   "birdrelay/" + versioninfo.Short(),
			Client:      util.RobustHTTPClient(),
		}
		tg := &telegram.Client{
			Token:  cctx.String("telegram-bot-token"),
			Client: util.RobustHTTPClient(),
		}

		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cctx.String("metrics-listen"), mux); err != nil {
				logger.Error("metrics listener failed", "err", err)
			}
		}()

		r := &Relay{
			logger:       logger,
			twitter:      tw,
			telegram:     tg,
			chatID:       cctx.String("telegram-chat-id"),
			watchList:    watchList,
			minFollowers: cctx.Int64("min-followers"),
		}

		logger.Info("starting", "handles", len(watchList), "version", versioninfo.Short())
		if err := r.Run(ctx); err != nil {
			logger.Error("relay failed", "err", err)
			if devChat := cctx.String("telegram-dev-chat-id"); devChat != "" {
				// best effort: a failed notification must not mask the
				// original error
				if nerr := tg.SendMessage(ctx, devChat, relay.RenderFailure(err)); nerr != nil {
					logger.Error("diagnostic notification failed", "err", nerr)
				}
			}
			return err
		}
		return nil
	},
}
