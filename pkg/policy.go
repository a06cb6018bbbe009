package buildver

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode selects how the next version is computed.
type Mode int

const (
	// Increment advances the counter: within the same year the build
	// number goes up by one, a year change resets it to 1.
	Increment Mode = iota
	// Skip leaves the counter untouched.
	Skip
	// Override adopts an explicit YEAR.BUILD pair verbatim. It bypasses
	// the monotonic counter, which is deliberate: re-releases and
	// corrections need a way to move the version anywhere.
	Override
)

// Request describes the bump a caller wants. Text is only consulted in
// Override mode.
type Request struct {
	Mode Mode
	Text string
}

// Next computes the successor of cur. It is pure: no I/O and no clock,
// the caller supplies the current year.
func Next(cur State, year int, req Request) (State, error) {
	switch req.Mode {
	case Skip:
		return cur, nil
	case Override:
		return ParseOverride(req.Text)
	case Increment:
		if cur.Year != year {
			return State{Year: year, Build: 1}, nil
		}
		return State{Year: cur.Year, Build: cur.Build + 1}, nil
	default:
		return State{}, fmt.Errorf("unknown bump mode %d", req.Mode)
	}
}

// ParseOverride parses an explicit "YEAR.BUILD" pair. Both parts must be
// non-negative integers; anything else is rejected with ErrInvalidOverride.
func ParseOverride(text string) (State, error) {
	parts := strings.Split(text, ".")
	if len(parts) != 2 {
		return State{}, fmt.Errorf("%w: %q: expected YEAR.BUILD (e.g. 2026.12)", ErrInvalidOverride, text)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 0 {
		return State{}, fmt.Errorf("%w: %q: year must be a non-negative integer", ErrInvalidOverride, text)
	}
	build, err := strconv.Atoi(parts[1])
	if err != nil || build < 0 {
		return State{}, fmt.Errorf("%w: %q: build must be a non-negative integer", ErrInvalidOverride, text)
	}
	return State{Year: year, Build: build}, nil
}
