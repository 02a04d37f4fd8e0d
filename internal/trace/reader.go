package trace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type envelope struct {
	OtherData   map[string]any `json:"otherData"`
	TraceEvents *[]Event       `json:"traceEvents"`
}

// Decode parses a complete envelope. Events are returned in file order.
func Decode(r io.Reader) ([]Event, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decode(data)
}

func decode(data []byte) ([]Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if env.TraceEvents == nil {
		return nil, fmt.Errorf("%w: missing traceEvents", ErrMalformed)
	}
	return *env.TraceEvents, nil
}

// Load reads and decodes the trace file at path.
func Load(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace %s: %w", path, err)
	}
	defer f.Close()

	events, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode trace %s: %w", path, err)
	}
	return events, nil
}

// Recover is Load for files that may still be open for writing or that were
// left behind by a crashed session. If the envelope is not closed it keeps
// every complete record and returns them together with ErrTruncated.
func Recover(path string) ([]Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace %s: %w", path, err)
	}

	events, err := decode(data)
	if err == nil {
		return events, nil
	}

	events, ok := salvage(data)
	if !ok {
		return nil, fmt.Errorf("failed to decode trace %s: %w", path, err)
	}
	return events, fmt.Errorf("%s: %w", path, ErrTruncated)
}

// salvage walks the envelope token by token and keeps every record that
// decodes before the first error. It reports false when the traceEvents
// array is never reached.
func salvage(data []byte) ([]Event, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, false
	}
	for dec.More() {
		key, err := dec.Token()
		if err != nil {
			return nil, false
		}
		if key != "traceEvents" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, false
			}
			continue
		}
		if tok, err := dec.Token(); err != nil || tok != json.Delim('[') {
			return nil, false
		}
		events := []Event{}
		for dec.More() {
			var e Event
			if err := dec.Decode(&e); err != nil {
				break
			}
			events = append(events, e)
		}
		return events, true
	}
	return nil, false
}
