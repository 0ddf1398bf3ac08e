package relay

import (
	"fmt"
	"log/slog"
	"strings"
)

// RuleCountExceededError means packing produced more expressions than the
// stream's rule quota. It is raised locally, before any network call.
type RuleCountExceededError struct {
	Count int
}

func (e *RuleCountExceededError) Error() string {
	return fmt.Sprintf("too many rules: %d/%d", e.Count, MaxRules)
}

// RuleLengthExceededError means a packed expression would be rejected by the
// remote API for exceeding the per-rule length ceiling.
type RuleLengthExceededError struct {
	Expression string
}

func (e *RuleLengthExceededError) Error() string {
	return fmt.Sprintf("rule too long: %d/%d chars: %q", len(e.Expression), MaxRuleLen, e.Expression)
}

// Chop partitions handles into consecutive groups of at most groupSize.
// The stride and the group width are the same value, so no handle is skipped
// or duplicated and no empty tail group is produced.
func Chop(handles []string, groupSize int) [][]string {
	var groups [][]string
	for i := 0; i < len(handles); i += groupSize {
		end := i + groupSize
		if end > len(handles) {
			end = len(handles)
		}
		groups = append(groups, handles[i:end])
	}
	return groups
}

// ToExpressions builds one stream rule per group, of the shape
//
//	(from: a OR from: b) -is:retweet
//
// It fails fast on the rule-count quota and pre-validates the per-rule
// length ceiling so a doomed rule set never reaches the network.
func ToExpressions(groups [][]string) ([]string, error) {
	if len(groups) > MaxRules {
		return nil, &RuleCountExceededError{Count: len(groups)}
	}
	exprs := make([]string, 0, len(groups))
	for _, group := range groups {
		clauses := make([]string, 0, len(group))
		for _, h := range group {
			clauses = append(clauses, "from: "+h)
		}
		expr := "(" + strings.Join(clauses, " OR ") + ") -is:retweet"
		if len(expr) > MaxRuleLen {
			return nil, &RuleLengthExceededError{Expression: expr}
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// PackRules chops the (already popularity-filtered) handle list into groups
// of HandlesPerRule and renders each group as a filter expression.
func PackRules(handles []string, logger *slog.Logger) ([]string, error) {
	exprs, err := ToExpressions(Chop(handles, HandlesPerRule))
	if err != nil {
		return nil, err
	}
	maxLen := 0
	for _, e := range exprs {
		if len(e) > maxLen {
			maxLen = len(e)
		}
	}
	logger.Info("packed stream rules", "rules", fmt.Sprintf("%d/%d", len(exprs), MaxRules), "maxLength", fmt.Sprintf("%d/%d", maxLen, MaxRuleLen))
	return exprs, nil
}
