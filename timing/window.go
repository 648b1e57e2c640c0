package timing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// SinceStart as a window start means the window has been open since before
// the match began.
const SinceStart = -1

// Window is a half-open time interval [Start, End) in seconds of match time.
type Window struct {
	Start float64
	End   float64
}

// Forever is the End of a window that never closes.
var Forever = math.Inf(1)

// Contains reports whether t falls inside the window. A window whose Start
// equals its End never matches.
func (w Window) Contains(t float64) bool {
	if w.Start == w.End {
		return false
	}
	start := w.Start
	if start == SinceStart {
		start = math.Inf(-1)
	}
	return t >= start && t < w.End
}

func (w Window) String() string {
	end := "inf"
	if !math.IsInf(w.End, 1) {
		end = strconv.FormatFloat(w.End, 'f', -1, 64)
	}
	return fmt.Sprintf("[%s, %s)", strconv.FormatFloat(w.Start, 'f', -1, 64), end)
}

// PhaseActive reports whether any window contains t. It has no memory: the
// answer depends only on the windows and the instant.
func PhaseActive(windows []Window, t float64) bool {
	for _, w := range windows {
		if w.Contains(t) {
			return true
		}
	}
	return false
}

// UnmarshalYAML accepts [start, end] or [start]. An omitted end, "inf" or
// .inf all mean Forever.
func (w *Window) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: window must be a sequence [start, end]", node.Line)
	}
	if len(node.Content) < 1 || len(node.Content) > 2 {
		return fmt.Errorf("line %d: window needs 1 or 2 bounds, got %d", node.Line, len(node.Content))
	}
	start, err := parseBound(node.Content[0].Value)
	if err != nil {
		return fmt.Errorf("line %d: window start: %w", node.Line, err)
	}
	end := Forever
	if len(node.Content) == 2 {
		end, err = parseBound(node.Content[1].Value)
		if err != nil {
			return fmt.Errorf("line %d: window end: %w", node.Line, err)
		}
	}
	if end < start {
		return fmt.Errorf("line %d: window end %v before start %v", node.Line, end, start)
	}
	*w = Window{Start: start, End: end}
	return nil
}

func parseBound(s string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inf", ".inf", "+inf", "+.inf":
		return Forever, nil
	}
	return strconv.ParseFloat(s, 64)
}
