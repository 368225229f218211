package otel

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"
)

// ReadTail returns the last n decodable events from a JSONL stream, oldest
// first. Lines that fail to decode are skipped. n <= 0 returns every event.
func ReadTail(r io.Reader, n int) ([]Event, error) {
	var out []Event
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var ev Event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			continue
		}
		ev.Dur = time.Duration(ev.DurMs * float64(time.Millisecond))
		out = append(out, ev)
		if n > 0 && len(out) > n {
			out = out[1:]
		}
	}
	return out, sc.Err()
}

// ReadTailFile is ReadTail over a file path.
func ReadTailFile(path string, n int) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTail(f, n)
}
