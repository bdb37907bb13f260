package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seq/internal/driver"
)

func TestProgressModelTracksEvents(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("expand", []string{"a.sq", "b.sq"}, events).(*expandModel)

	m.applyEvent(driver.Event{File: "a.sq", Stage: driver.StageExpand, Status: driver.StatusWorking})
	assert.Equal(t, "expanding", itemLabel(m.items[0]))
	assert.InDelta(t, 0.25, m.fraction(), 1e-9)

	m.applyEvent(driver.Event{File: "a.sq", Status: driver.StatusDone, Elapsed: 3 * time.Millisecond})
	m.applyEvent(driver.Event{File: "b.sq", Stage: driver.StageLoad, Status: driver.StatusError, Err: errors.New("no such file")})
	// события для неизвестных файлов игнорируются
	assert.Nil(t, m.applyEvent(driver.Event{File: "zzz.sq", Status: driver.StatusDone}))

	finished, failed := m.counts()
	assert.Equal(t, 2, finished)
	assert.Equal(t, 1, failed)
	assert.InDelta(t, 1.0, m.fraction(), 1e-9)

	view := m.View()
	assert.Contains(t, view, "expand 2/2, 1 failed")
	assert.Contains(t, view, "a.sq")
	assert.Contains(t, view, "no such file")
}

func TestProgressModelQuitsWhenChannelCloses(t *testing.T) {
	events := make(chan driver.Event)
	close(events)
	m := NewProgressModel("expand", []string{"a.sq"}, events).(*expandModel)

	msg := m.listenForEvent()()
	require.IsType(t, doneMsg{}, msg)
	next, cmd := m.Update(msg)
	assert.NotNil(t, cmd)
	assert.True(t, next.(*expandModel).done)
	assert.True(t, strings.HasPrefix(stripANSI(m.View()), "done: expand 0/1"))
}

func TestEmptyModelRendersNothing(t *testing.T) {
	m := NewProgressModel("expand", nil, nil)
	assert.Empty(t, m.View())
}

func TestTruncateKeepsTail(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, ".../c/d.sq", truncate("aaaa/b/c/d.sq", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == 0x1b:
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
