package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/parawatch/birdrelay/relay"
	"github.com/parawatch/birdrelay/telegram"
	"github.com/parawatch/birdrelay/twitter"
)

type Relay struct {
	logger       *slog.Logger
	twitter      *twitter.Client
	telegram     *telegram.Client
	chatID       string
	watchList    []string
	minFollowers int64
}

// Run executes one full relay cycle: prune the watch list by popularity,
// pack and install stream rules, then consume the stream until the server
// closes it. Strictly sequential; at most one post is in flight at a time
// and backpressure is the blocking read/send cycle itself.
func (r *Relay) Run(ctx context.Context) error {
	popular, err := relay.FilterPopular(ctx, r.twitter, r.watchList, r.minFollowers, r.logger)
	if err != nil {
		return err
	}
	rules, err := relay.PackRules(popular, r.logger)
	if err != nil {
		return err
	}
	if err := relay.SyncRules(ctx, r.twitter, rules, r.logger); err != nil {
		return err
	}

	stream, err := r.twitter.OpenStream(ctx)
	if err != nil {
		return err
	}
	defer stream.Close()
	r.logger.Info("stream open, relaying posts")

	for {
		ev, err := stream.Next()
		if errors.Is(err, io.EOF) {
			r.logger.Info("stream closed by server")
			return nil
		}
		if err != nil {
			return err
		}
		eventsReceived.Inc()

		ok, reason := relay.ShouldForward(ev)
		if !ok {
			eventsRejected.WithLabelValues(reason.String()).Inc()
			r.logger.Info("skipping post", "username", ev.Username, "reason", reason.String())
			continue
		}

		if err := r.telegram.SendMessage(ctx, r.chatID, relay.RenderMessage(ev)); err != nil {
			return fmt.Errorf("forwarding post %s: %w", ev.ID, err)
		}
		eventsForwarded.Inc()
		r.logger.Info("forwarded post", "username", ev.Username, "id", ev.ID)
	}
}
