package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/pulse/emitter"
)

// maxLines is how many recent events the tap retains for display.
const maxLines = 512

// tap collects events through a wildcard listener and renders the tail.
type tap struct {
	mu    sync.Mutex
	lines []string
	total int
}

func newTap(em *emitter.Emitter) *tap {
	t := &tap{}
	em.On(emitter.Wildcard, emitter.Func(t.record), emitter.WithPriority(100))
	return t
}

// record is the wildcard listener. Args[0] is the event name per the
// wildcard argument convention; the rest are the trigger arguments.
func (t *tap) record(_ context.Context, inv emitter.Invocation) error {
	name := "?"
	args := inv.Args
	if len(args) > 0 {
		if s, ok := args[0].(string); ok {
			name = s
		}
		args = args[1:]
	}

	line := fmt.Sprintf("%s  %-16s %v", time.Now().Format("15:04:05.000"), name, args)

	t.mu.Lock()
	t.lines = append(t.lines, line)
	if len(t.lines) > maxLines {
		t.lines = t.lines[len(t.lines)-maxLines:]
	}
	t.total++
	t.mu.Unlock()
	return nil
}

// loop runs the screen event loop until quit or ctx cancellation.
func (t *tap) loop(ctx context.Context, screen tcell.Screen) int {
	events := make(chan tcell.Event, 16)
	go screen.ChannelEvents(events, ctx.Done())

	redraw := time.NewTicker(100 * time.Millisecond)
	defer redraw.Stop()

	for {
		select {
		case <-ctx.Done():
			return 0
		case ev, ok := <-events:
			if !ok {
				return 0
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuit(ev) {
					return 0
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-redraw.C:
			t.draw(screen)
		}
	}
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	default:
		return false
	}
}

func (t *tap) draw(screen tcell.Screen) {
	width, height := screen.Size()
	screen.Clear()

	headerStyle := tcell.StyleDefault.Bold(true).Reverse(true)
	lineStyle := tcell.StyleDefault

	t.mu.Lock()
	total := t.total
	visible := t.lines
	if rows := height - 1; rows > 0 && len(visible) > rows {
		visible = visible[len(visible)-rows:]
	}
	tail := make([]string, len(visible))
	copy(tail, visible)
	t.mu.Unlock()

	header := fmt.Sprintf(" pulsetap — %d events — q to quit", total)
	putLine(screen, 0, header, width, headerStyle)

	for i, line := range tail {
		putLine(screen, i+1, line, width, lineStyle)
	}

	screen.Show()
}

func putLine(screen tcell.Screen, y int, text string, width int, style tcell.Style) {
	x := 0
	for _, r := range text {
		if x >= width {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
}
