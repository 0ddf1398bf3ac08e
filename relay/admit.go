package relay

import (
	"github.com/parawatch/birdrelay/twitter"
)

// RejectReason says why an event was not forwarded.
type RejectReason int

const (
	RejectNone RejectReason = iota
	// RejectReplyToOther: the post replies to a different account, so it is
	// conversation noise rather than a self-thread continuation.
	RejectReplyToOther
	// RejectRestrictedReplies: the author limited who may reply; treated as
	// not meant for public relay.
	RejectRestrictedReplies
	// RejectRetweet: reshared content, not an original post.
	RejectRetweet
)

func (r RejectReason) String() string {
	switch r {
	case RejectReplyToOther:
		return "reply_to_other"
	case RejectRestrictedReplies:
		return "restricted_replies"
	case RejectRetweet:
		return "retweet"
	default:
		return "none"
	}
}

// ShouldForward applies the admission predicates in order, short-circuiting
// on the first disqualifier. The order only affects which reason gets
// reported; the net decision is the conjunction of all three checks.
func ShouldForward(ev *twitter.Event) (bool, RejectReason) {
	if ev.InReplyToUserID != "" && ev.InReplyToUserID != ev.AuthorID {
		return false, RejectReplyToOther
	}
	if ev.ReplySettings != "everyone" {
		return false, RejectRestrictedReplies
	}
	if ev.Retweeted {
		return false, RejectRetweet
	}
	return true, RejectNone
}
