package relay

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/parawatch/birdrelay/twitter"
)

// RuleAPI is the slice of the stream-rule endpoint the synchronizer needs.
// *twitter.Client satisfies this.
type RuleAPI interface {
	GetRules(ctx context.Context) ([]twitter.ActiveRule, error)
	DeleteRules(ctx context.Context, ids []string) error
	AddRules(ctx context.Context, values []string) error
}

// SyncRules replaces the remote rule set: fetch what is active, delete it
// all in one call, install the new expressions in one call.
//
// There is no rollback. If the delete lands but the add fails the stream is
// left with zero rules; the error is surfaced to the caller instead of being
// papered over with a retry.
func SyncRules(ctx context.Context, api RuleAPI, values []string, logger *slog.Logger) error {
	active, err := api.GetRules(ctx)
	if err != nil {
		return fmt.Errorf("fetching active rules: %w", err)
	}
	if len(active) > 0 {
		ids := make([]string, 0, len(active))
		for _, r := range active {
			ids = append(ids, r.ID)
		}
		if err := api.DeleteRules(ctx, ids); err != nil {
			return fmt.Errorf("deleting %d active rules: %w", len(ids), err)
		}
		logger.Info("deleted stale stream rules", "count", len(ids))
	}
	if err := api.AddRules(ctx, values); err != nil {
		return fmt.Errorf("installing %d rules: %w", len(values), err)
	}
	logger.Info("installed stream rules", "count", len(values))
	return nil
}
