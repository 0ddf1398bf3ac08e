package relay

import (
	"fmt"
	"strings"

	"github.com/parawatch/birdrelay/twitter"
)

const (
	birdGlyph   = "\U0001F426" // 🐦
	threadGlyph = "\U0001F9F5" // 🧵
)

// Permalink is the canonical web URL for a post.
func Permalink(ev *twitter.Event) string {
	return fmt.Sprintf("https://twitter.com/%s/status/%s", ev.Username, ev.ID)
}

// escapeMarkdown protects literal underscores from being read as emphasis
// markers by the Markdown renderer on the receiving side. Text inside URLs
// must not be escaped: URLs are not re-rendered as emphasis-sensitive text.
func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "_", `\_`)
}

// RenderMessage turns an accepted event into the outgoing Markdown message:
// a bird glyph linking the permalink, a thread glyph when the post continues
// the author's own thread, the display name, the post body, and a trailing
// permalink line.
func RenderMessage(ev *twitter.Event) string {
	thread := ""
	if ev.InReplyToUserID != "" && ev.InReplyToUserID == ev.AuthorID {
		thread = threadGlyph
	}
	url := Permalink(ev)
	header := fmt.Sprintf("[%s](%s)%s #%s:", birdGlyph, url, thread, escapeMarkdown(ev.Name))
	footer := fmt.Sprintf("[Permalink](%s)", url)
	return header + "\n" + escapeMarkdown(ev.Text) + "\n\n" + footer
}

// RenderFailure formats an operational error for the diagnostic channel.
func RenderFailure(err error) string {
	return fmt.Sprintf("birdrelay terminated: %s", err)
}
