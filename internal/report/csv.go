package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"algobench/internal/trace"
)

// CSVHeader matches the record keys of the trace format, in file order.
var CSVHeader = []string{"cat", "dur", "name", "ph", "pid", "tid", "ts"}

// WriteCSV writes events as CSV with CSVHeader as the first row. An empty
// trace yields ErrNoEvents and writes nothing.
func WriteCSV(w io.Writer, events []trace.Event) error {
	if len(events) == 0 {
		return ErrNoEvents
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, e := range events {
		phase := e.Phase
		if phase == "" {
			phase = trace.PhaseComplete
		}
		row := []string{
			e.Category,
			strconv.FormatInt(e.Duration, 10),
			trace.NormalizeName(e.Name),
			phase,
			strconv.Itoa(e.ProcessID),
			strconv.FormatUint(e.ThreadID, 10),
			strconv.FormatInt(e.Timestamp, 10),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
