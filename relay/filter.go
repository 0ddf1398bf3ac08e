package relay

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/parawatch/birdrelay/twitter"
)

// FollowerLookup resolves a batch of handles to their follower counts.
// *twitter.Client satisfies this.
type FollowerLookup interface {
	UsersBy(ctx context.Context, handles []string) ([]twitter.UserStat, error)
}

// FilterPopular returns the handles whose follower count exceeds
// minFollowers, in input order. The lookup is issued in batches of at most
// twitter.MaxLookupBatch handles, including the final partial batch.
//
// Any lookup failure aborts the whole call; no partial result is returned.
func FilterPopular(ctx context.Context, lookup FollowerLookup, handles []string, minFollowers int64, logger *slog.Logger) ([]string, error) {
	var popular []string
	for start := 0; start < len(handles); start += twitter.MaxLookupBatch {
		end := start + twitter.MaxLookupBatch
		if end > len(handles) {
			end = len(handles)
		}
		stats, err := lookup.UsersBy(ctx, handles[start:end])
		if err != nil {
			return nil, fmt.Errorf("follower lookup for batch starting at %d: %w", start, err)
		}
		for _, s := range stats {
			if s.Followers > minFollowers {
				popular = append(popular, s.Handle)
			}
		}
	}
	logger.Info("trimming watch list to biggest accounts", "input", len(handles), "retained", len(popular), "minFollowers", minFollowers)
	return popular, nil
}
