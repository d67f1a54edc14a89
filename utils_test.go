package infcounter

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/inconshreveable/log15"
)

var l = log15.New()

func testCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}

// lineRecorder collects everything a Counter writes, one write per line.
type lineRecorder struct {
	lines chan string
}

func newLineRecorder() *lineRecorder {
	return &lineRecorder{lines: make(chan string, 64)}
}

func (r *lineRecorder) Write(p []byte) (int, error) {
	r.lines <- string(p)
	return len(p), nil
}

func (r *lineRecorder) next(t *testing.T) string {
	t.Helper()
	select {
	case line := <-r.lines:
		return line
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for a tick line")
		return ""
	}
}

func (r *lineRecorder) empty() bool {
	return len(r.lines) == 0
}

// input joins operator answers the way they would be typed.
func input(answers ...string) *strings.Reader {
	return strings.NewReader(strings.Join(answers, "\n") + "\n")
}
