package director

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ivlev/telop/internal/telop"
)

// ImportSRT converts SubRip cues into a script. Cue lines are joined with
// "\n"; a cue whose end precedes its start gets zero duration. With lenient
// set, malformed blocks are skipped instead of failing the import.
func ImportSRT(data []byte, lenient bool) (*Script, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimPrefix(text, "\ufeff")

	var set telop.Set
	for n, block := range strings.Split(text, "\n\n") {
		lines := trimBlock(strings.Split(block, "\n"))
		if len(lines) == 0 {
			continue
		}
		e, err := parseCue(lines)
		if err != nil {
			if lenient {
				continue
			}
			return nil, fmt.Errorf("srt block %d: %w", n+1, err)
		}
		set = append(set, e)
	}

	if len(set) == 0 {
		return nil, ErrEmptyScript
	}
	return newScript(set), nil
}

func trimBlock(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func parseCue(lines []string) (telop.Entry, error) {
	// index line is optional
	if !strings.Contains(lines[0], "-->") {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return telop.Entry{}, errors.New("missing timing line")
	}

	parts := strings.Split(lines[0], "-->")
	if len(parts) != 2 {
		return telop.Entry{}, errors.New("invalid timing separator")
	}
	start, err := parseTimestamp(parts[0])
	if err != nil {
		return telop.Entry{}, fmt.Errorf("start time: %w", err)
	}
	// drop cue settings after the end timestamp
	endField := strings.Fields(parts[1])
	if len(endField) == 0 {
		return telop.Entry{}, errors.New("missing end time")
	}
	end, err := parseTimestamp(endField[0])
	if err != nil {
		return telop.Entry{}, fmt.Errorf("end time: %w", err)
	}

	duration := end - start
	if duration < 0 {
		duration = 0
	}
	return telop.Entry{
		Start:    start,
		Duration: duration,
		Text:     strings.Join(lines[1:], "\n"),
	}, nil
}

// parseTimestamp reads HH:MM:SS,mmm (or with a '.') into seconds.
func parseTimestamp(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.Replace(s, ",", ".", 1)

	hms := strings.Split(s, ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}
	h, err := strconv.Atoi(hms[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hours in %q", s)
	}
	m, err := strconv.Atoi(hms[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minutes in %q", s)
	}
	sec, err := strconv.ParseFloat(hms[2], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seconds in %q", s)
	}
	return float64(h)*3600 + float64(m)*60 + sec, nil
}
