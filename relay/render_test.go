package relay

import (
	"errors"
	"strings"
	"testing"

	"github.com/parawatch/birdrelay/twitter"

	"github.com/stretchr/testify/assert"
)

func TestRenderMessageEscaping(t *testing.T) {
	assert := assert.New(t)

	ev := twitter.Event{
		ID:       "1",
		AuthorID: "42",
		Text:     "a_b_c",
		Username: "u",
		Name:     "X_Y",
	}
	msg := RenderMessage(&ev)

	// underscores in body and display name are escaped, the URL's handle
	// is not
	assert.Contains(msg, `a\_b\_c`)
	assert.Contains(msg, `#X\_Y:`)
	assert.Contains(msg, "https://twitter.com/u/status/1")
	assert.NotContains(msg, threadGlyph)
	assert.Contains(msg, "[Permalink](https://twitter.com/u/status/1)")
}

func TestRenderMessageShape(t *testing.T) {
	assert := assert.New(t)

	ev := twitter.Event{
		ID:       "777",
		AuthorID: "42",
		Text:     "body text",
		Username: "alice",
		Name:     "Alice",
	}
	msg := RenderMessage(&ev)
	want := "[" + birdGlyph + "](https://twitter.com/alice/status/777) #Alice:\n" +
		"body text\n\n" +
		"[Permalink](https://twitter.com/alice/status/777)"
	assert.Equal(want, msg)
}

func TestRenderMessageThreadGlyph(t *testing.T) {
	assert := assert.New(t)

	ev := twitter.Event{
		ID:              "1",
		AuthorID:        "42",
		InReplyToUserID: "42",
		Text:            "part two",
		Username:        "u",
		Name:            "U",
	}
	msg := RenderMessage(&ev)
	assert.Contains(msg, threadGlyph)
	// glyph sits between the linked bird and the name
	header := strings.SplitN(msg, "\n", 2)[0]
	assert.Equal("["+birdGlyph+"](https://twitter.com/u/status/1)"+threadGlyph+" #U:", header)

	// a reply to someone else would never reach the renderer, but the glyph
	// logic itself only fires on self-replies
	ev.InReplyToUserID = "99"
	assert.NotContains(RenderMessage(&ev), threadGlyph)
}

func TestRenderFailure(t *testing.T) {
	msg := RenderFailure(errors.New("stream fell over"))
	assert.Contains(t, msg, "stream fell over")
}
