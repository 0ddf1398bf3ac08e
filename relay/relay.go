// Package relay holds the decision logic of the bot: pruning the watch list
// by popularity, packing handles into stream filter rules, synchronizing the
// remote rule set, and deciding which incoming posts get forwarded and how
// they render.
package relay

// Remote-imposed quotas on the filtered stream, plus local packing tuning.
const (
	// MaxRules is the hard ceiling on concurrently installed stream rules.
	MaxRules = 5
	// MaxRuleLen is the hard ceiling on a single rule expression's length.
	MaxRuleLen = 512
	// HandlesPerRule keeps each OR-expression comfortably under MaxRuleLen
	// even for long handles.
	HandlesPerRule = 20
	// DefaultMinFollowers is the popularity floor for the watch list.
	DefaultMinFollowers = 5000
)
