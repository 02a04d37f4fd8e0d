package trace

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"
)

const (
	header = `{"otherData": {},"traceEvents":[`
	footer = `]}`
)

// Writer streams an envelope one record at a time. It inserts the separator
// before every record except the first, so the output never has a trailing
// comma. Writer is not safe for concurrent use; the profiler serialises calls.
type Writer struct {
	bw    *bufio.Writer
	count int
	buf   []byte
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

// WriteHeader writes the envelope's opening token and flushes it.
func (w *Writer) WriteHeader() error {
	w.count = 0
	if _, err := w.bw.WriteString(header); err != nil {
		return err
	}
	return w.bw.Flush()
}

// WriteEvent appends one record and flushes it so a crashed run keeps every
// record written so far.
func (w *Writer) WriteEvent(e Event) error {
	w.buf = w.buf[:0]
	if w.count > 0 {
		w.buf = append(w.buf, ',')
	}
	w.buf = AppendEvent(w.buf, e)
	if _, err := w.bw.Write(w.buf); err != nil {
		return err
	}
	if err := w.bw.Flush(); err != nil {
		return err
	}
	w.count++
	return nil
}

// WriteFooter closes the array and the envelope.
func (w *Writer) WriteFooter() error {
	if _, err := w.bw.WriteString(footer); err != nil {
		return err
	}
	return w.bw.Flush()
}

// Count is the number of records written since the last WriteHeader.
func (w *Writer) Count() int { return w.count }

// Encode writes a complete envelope holding events.
func Encode(w io.Writer, events []Event) error {
	tw := NewWriter(w)
	if err := tw.WriteHeader(); err != nil {
		return err
	}
	for _, e := range events {
		if err := tw.WriteEvent(e); err != nil {
			return err
		}
	}
	return tw.WriteFooter()
}

// NormalizeName replaces double quotes with single quotes, as stored in the file.
func NormalizeName(name string) string {
	return strings.ReplaceAll(name, `"`, `'`)
}

// AppendEvent appends the JSON record for e in the fixed field order
// cat, dur, name, ph, pid, tid, ts. An empty phase is written as "X".
func AppendEvent(dst []byte, e Event) []byte {
	phase := e.Phase
	if phase == "" {
		phase = PhaseComplete
	}
	dst = append(dst, `{"cat":`...)
	dst = appendString(dst, e.Category)
	dst = append(dst, `,"dur":`...)
	dst = strconv.AppendInt(dst, e.Duration, 10)
	dst = append(dst, `,"name":`...)
	dst = appendString(dst, NormalizeName(e.Name))
	dst = append(dst, `,"ph":`...)
	dst = appendString(dst, phase)
	dst = append(dst, `,"pid":`...)
	dst = strconv.AppendInt(dst, int64(e.ProcessID), 10)
	dst = append(dst, `,"tid":`...)
	dst = strconv.AppendUint(dst, e.ThreadID, 10)
	dst = append(dst, `,"ts":`...)
	dst = strconv.AppendInt(dst, e.Timestamp, 10)
	return append(dst, '}')
}

func appendString(dst []byte, s string) []byte {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return append(dst, bytes.TrimSuffix(b.Bytes(), []byte("\n"))...)
}
