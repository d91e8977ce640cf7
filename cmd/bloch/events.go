package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Kind is the type of an input event.
type Kind int

const (
	EventAngles Kind = iota
	EventCommit
	EventToggle
	EventGate
	EventReset
	EventWait
)

// Event is one line of the input script.
type Event struct {
	Kind  Kind
	Theta int
	Phi   int
	Gate  string
	Wait  time.Duration
}

/*
ParseEvents reads one event per line:

	angles <theta> <phi>
	commit
	toggle
	gate <key>
	reset
	wait <duration>

Blank lines and lines starting with # are skipped.
*/
func ParseEvents(r io.Reader) ([]Event, error) {
	var events []Event

	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		ev, err := parseEvent(strings.Fields(text))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		events = append(events, ev)
	}

	return events, scanner.Err()
}

func parseEvent(fields []string) (Event, error) {
	arity := map[string]int{
		"angles": 2, "commit": 0, "toggle": 0, "gate": 1, "reset": 0, "wait": 1,
	}

	want, ok := arity[fields[0]]
	if !ok {
		return Event{}, fmt.Errorf("unknown event %q", fields[0])
	}
	if len(fields)-1 != want {
		return Event{}, fmt.Errorf("%s takes %d argument(s), got %d", fields[0], want, len(fields)-1)
	}

	switch fields[0] {
	case "angles":
		theta, err := strconv.Atoi(fields[1])
		if err != nil {
			return Event{}, fmt.Errorf("theta: %w", err)
		}
		phi, err := strconv.Atoi(fields[2])
		if err != nil {
			return Event{}, fmt.Errorf("phi: %w", err)
		}
		return Event{Kind: EventAngles, Theta: theta, Phi: phi}, nil
	case "commit":
		return Event{Kind: EventCommit}, nil
	case "toggle":
		return Event{Kind: EventToggle}, nil
	case "gate":
		return Event{Kind: EventGate, Gate: fields[1]}, nil
	case "reset":
		return Event{Kind: EventReset}, nil
	default:
		d, err := time.ParseDuration(fields[1])
		if err != nil {
			return Event{}, err
		}
		return Event{Kind: EventWait, Wait: d}, nil
	}
}
