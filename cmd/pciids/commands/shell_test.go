package commands

import (
	"bytes"
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func execShell(t *testing.T, s *Shell, line string) (string, bool) {
	t.Helper()
	var buf bytes.Buffer
	quit := s.Exec(line, &buf)
	return buf.String(), quit
}

func TestShellLookups(t *testing.T) {
	s := newShell(fixtureTable(t), "fixture", FormatText, nil)

	tests := []struct {
		line string
		want string
	}{
		{"vendor 1af4", "1af4 Red Hat, Inc."},
		{"v 0x8086", "100e  82540EM Gigabit Ethernet Controller"},
		{"device 8086 100e", "Device: 8086:100e 82540EM"},
		{"d 8086:100e", "8086:002e PRO/1000 MT Desktop Adapter"},
		{"class 07", "01  Parallel controller"},
		{"subclass 07 00", "02 16550"},
		{"list classes", "0c Serial bus controller"},
		{"info", "Source:      fixture"},
		{"help", "PCI ID Lookup Commands"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			out, quit := execShell(t, s, tt.line)
			assert.False(t, quit)
			assert.Contains(t, out, tt.want)
			assert.NotContains(t, out, "Error:")
		})
	}
}

func TestShellErrors(t *testing.T) {
	s := newShell(fixtureTable(t), "fixture", FormatText, nil)

	tests := []struct {
		line string
		want string
	}{
		{"vendor", "usage: vendor"},
		{"vendor xyz", "invalid id"},
		{"vendor dead", "not found"},
		{"device 8086", "usage: device"},
		{"subclass 07", "usage: subclass"},
		{"list", "usage: list"},
		{"format json", "unknown format"},
		{"bogus", "Unknown command: bogus"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			out, quit := execShell(t, s, tt.line)
			assert.False(t, quit)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestShellFormatSwitch(t *testing.T) {
	s := newShell(fixtureTable(t), "fixture", FormatText, nil)

	out, _ := execShell(t, s, "format")
	assert.Equal(t, "text\n", out)

	_, _ = execShell(t, s, "format yaml")
	out, _ = execShell(t, s, "vendor 1af4")
	assert.Contains(t, out, "name: Red Hat, Inc.")
}

func TestShellQuitAndBlank(t *testing.T) {
	s := newShell(fixtureTable(t), "fixture", FormatText, nil)

	out, quit := execShell(t, s, "   ")
	assert.False(t, quit)
	assert.Empty(t, out)

	for _, line := range []string{"quit", "exit", "Q"} {
		_, quit = execShell(t, s, line)
		assert.True(t, quit, line)
	}
}

type countingCloser struct {
	closed atomic.Int32
}

func (c *countingCloser) Close() error {
	c.closed.Add(1)
	return nil
}

func TestCloseOnDone_Cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := &countingCloser{}
	stop := closeOnDone(ctx, c)
	defer stop()

	cancel()
	assert.Eventually(t, func() bool { return c.closed.Load() == 1 },
		time.Second, 5*time.Millisecond, "cancelling the context closes the reader")
}

func TestCloseOnDone_Stop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := &countingCloser{}

	stop := closeOnDone(ctx, c)
	stop()
	cancel()

	// stop waits for the watcher, so a later cancel cannot reach it.
	assert.Equal(t, int32(0), c.closed.Load())
}
