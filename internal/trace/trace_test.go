package trace

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, nil))
	assert.Equal(t, `{"otherData": {},"traceEvents":[]}`, buf.String())
	assert.True(t, json.Valid(buf.Bytes()))
}

func TestWriter_FieldOrderAndSeparators(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteEvent(Event{Category: "Best", Duration: 12, Name: "A", ThreadID: 7, Timestamp: 100}))
	require.NoError(t, w.WriteEvent(Event{Category: "Worst", Duration: 0, Name: "B", ThreadID: 7, Timestamp: 200}))
	require.NoError(t, w.WriteFooter())

	want := `{"otherData": {},"traceEvents":[` +
		`{"cat":"Best","dur":12,"name":"A","ph":"X","pid":0,"tid":7,"ts":100},` +
		`{"cat":"Worst","dur":0,"name":"B","ph":"X","pid":0,"tid":7,"ts":200}` +
		`]}`
	assert.Equal(t, want, buf.String())
	assert.Equal(t, 2, w.Count())
}

func TestWriter_NormalizesQuotesAndEscapes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, []Event{{Category: `a\b`, Name: `say "hi" <now>`}}))
	assert.Contains(t, buf.String(), `"name":"say 'hi' <now>"`)
	assert.Contains(t, buf.String(), `"cat":"a\\b"`)
	assert.True(t, json.Valid(buf.Bytes()))
}

func TestRoundTrip(t *testing.T) {
	in := []Event{
		{Category: "Best", Duration: 15, Name: `Merge Sort (Best, Size: 1000)`, ThreadID: 1, Timestamp: 10},
		{Category: "Average", Duration: 3, Name: `odd "quoted" name`, ThreadID: 2, Timestamp: 40},
		{Category: "Worst", Duration: 99, Name: `Quick Sort (Worst, Size: 1000)`, ThreadID: 1, Timestamp: 50},
	}
	var first bytes.Buffer
	require.NoError(t, Encode(&first, in))

	out, err := Decode(bytes.NewReader(first.Bytes()))
	require.NoError(t, err)
	require.Len(t, out, len(in))
	for i := range in {
		assert.Equal(t, in[i].Category, out[i].Category)
		assert.Equal(t, in[i].Duration, out[i].Duration)
		assert.Equal(t, NormalizeName(in[i].Name), out[i].Name)
		assert.Equal(t, in[i].ThreadID, out[i].ThreadID)
		assert.Equal(t, in[i].Timestamp, out[i].Timestamp)
		assert.Equal(t, PhaseComplete, out[i].Phase)
	}

	var second bytes.Buffer
	require.NoError(t, Encode(&second, out))
	assert.Equal(t, first.String(), second.String())
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte(`not json`)))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Decode(bytes.NewReader([]byte(`{"otherData": {}}`)))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRecover_TruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.json")
	partial := header +
		`{"cat":"Best","dur":1,"name":"A","ph":"X","pid":0,"tid":1,"ts":1},` +
		`{"cat":"Best","dur":2,"name":"B","ph":"X","pid":0,"tid":1,"ts":3}`
	require.NoError(t, os.WriteFile(path, []byte(partial), 0644))

	events, err := Recover(path)
	assert.ErrorIs(t, err, ErrTruncated)
	require.Len(t, events, 2)
	assert.Equal(t, "B", events[1].Name)

	_, err = Load(path)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestRecover_TornRecordWithBraceInName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "torn.json")
	partial := header +
		`{"cat":"Best","dur":1,"name":"A","ph":"X","pid":0,"tid":1,"ts":1},` +
		`{"cat":"Best","dur":1,"name":"set }a`
	require.NoError(t, os.WriteFile(path, []byte(partial), 0644))

	events, err := Recover(path)
	assert.ErrorIs(t, err, ErrTruncated)
	require.Len(t, events, 1)
	assert.Equal(t, "A", events[0].Name)
}

func TestRecover_TrailingSeparator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comma.json")
	partial := header + `{"cat":"Best","dur":1,"name":"A}","ph":"X","pid":0,"tid":1,"ts":1},`
	require.NoError(t, os.WriteFile(path, []byte(partial), 0644))

	events, err := Recover(path)
	assert.ErrorIs(t, err, ErrTruncated)
	require.Len(t, events, 1)
	assert.Equal(t, "A}", events[0].Name)
}

func TestRecover_NotATrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"otherData": {}, "events": [`), 0644))

	events, err := Recover(path)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.NotErrorIs(t, err, ErrTruncated)
	assert.Nil(t, events)
}

func TestRecover_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "header.json")
	require.NoError(t, os.WriteFile(path, []byte(header), 0644))

	events, err := Recover(path)
	assert.ErrorIs(t, err, ErrTruncated)
	assert.Empty(t, events)
}

func TestRecover_CompleteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ok.json")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, Encode(f, []Event{{Name: "A", Category: "Best"}}))
	require.NoError(t, f.Close())

	events, err := Recover(path)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestParseLabel(t *testing.T) {
	l, ok := ParseLabel("Interpolation Search (Worst, Size: 99000)")
	require.True(t, ok)
	assert.Equal(t, Label{Algorithm: "Interpolation Search", Case: "Worst", Size: 99000}, l)
	assert.Equal(t, "Interpolation Search (Worst, Size: 99000)", l.String())

	_, ok = ParseLabel("setup")
	assert.False(t, ok)
}
