package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format selects how a Summary is written.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
)

// ParseFormat accepts table, json, yaml (or yml) and toml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported format '%s' (want table, json, yaml or toml)", s)
}

// Write renders s to w in format f.
func Write(w io.Writer, s Summary, f Format) error {
	var (
		data []byte
		err  error
	)
	switch f {
	case FormatTable:
		return writeTable(w, s)
	case FormatJSON:
		data, err = json.MarshalIndent(s, "", "  ")
		data = append(data, '\n')
	case FormatYAML:
		data, err = yaml.Marshal(s)
	case FormatTOML:
		data, err = toml.Marshal(s)
	default:
		return fmt.Errorf("unsupported format '%s'", f)
	}
	if err != nil {
		return fmt.Errorf("failed to encode summary as %s: %w", f, err)
	}
	_, err = w.Write(data)
	return err
}

func writeTable(w io.Writer, s Summary) error {
	fmt.Fprintf(w, "%s: %d events", s.Source, s.Events)
	if s.Truncated {
		fmt.Fprint(w, " (truncated)")
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tCASE\tCOUNT\tMIN (µs)\tMAX (µs)\tMEAN (µs)\tLARGEST N")
	for _, series := range s.Series {
		largest := 0
		for _, p := range series.Points {
			if p.Size > largest {
				largest = p.Size
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%.2f\t%d\n",
			series.Algorithm, series.Case, series.Count, series.Min, series.Max, series.Mean, largest)
	}
	return tw.Flush()
}
