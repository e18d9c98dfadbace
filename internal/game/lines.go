package game

import "strings"

// lineReader yields the lines of a trimmed share text one at a time.
type lineReader struct {
	rest []string
}

func splitLines(raw string) *lineReader {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return &lineReader{}
	}
	return &lineReader{rest: strings.Split(trimmed, "\n")}
}

func (l *lineReader) next() (string, bool) {
	if len(l.rest) == 0 {
		return "", false
	}
	line := l.rest[0]
	l.rest = l.rest[1:]
	return strings.TrimRight(line, "\r"), true
}
