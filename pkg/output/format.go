// Package output renders plan, sync and installed-package reports as a
// terminal table or as JSON, CSV or XML for scripts.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Format represents the output format type.
type Format string

const (
	// FormatTable is the default terminal table output.
	FormatTable Format = "table"
	// FormatCSV outputs data as comma-separated values.
	FormatCSV Format = "csv"
	// FormatJSON outputs data as JSON.
	FormatJSON Format = "json"
	// FormatXML outputs data as XML.
	FormatXML Format = "xml"
)

// Formats lists every supported format in help-text order.
var Formats = []Format{FormatTable, FormatJSON, FormatCSV, FormatXML}

// ParseFormat parses a format name, ignoring case.
//
// Parameters:
//   - s: Format name; "" selects FormatTable
//
// Returns:
//   - Format: The parsed format
//   - error: When s names no supported format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return FormatTable, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "xml":
		return FormatXML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use table, json, csv or xml)", s)
	}
}

// IsStructuredFormat reports whether f is meant for machines rather than
// terminals. Progress and colour are suppressed for structured formats.
func IsStructuredFormat(f Format) bool {
	return f == FormatCSV || f == FormatJSON || f == FormatXML
}

// Formatter writes encoded data to a writer.
type Formatter struct {
	writer io.Writer
}

// NewFormatter returns a formatter writing to w.
func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{writer: w}
}

// WriteCSV writes a header row followed by rows.
//
// Returns:
//   - error: The first write error reported by the csv writer
func (f *Formatter) WriteCSV(headers []string, rows [][]string) error {
	w := csv.NewWriter(f.writer)
	_ = w.Write(headers)
	for _, row := range rows {
		_ = w.Write(row)
	}
	w.Flush()
	return w.Error()
}

// WriteJSON writes data as indented JSON with HTML escaping disabled, so
// install output containing < or & stays readable.
func (f *Formatter) WriteJSON(data any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return err
	}
	_, err := f.writer.Write(buf.Bytes())
	return err
}

// WriteXML writes the XML header and data with 2-space indentation.
func (f *Formatter) WriteXML(data any) error {
	if _, err := io.WriteString(f.writer, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(f.writer)
	enc.Indent("", "  ")
	if err := enc.Encode(data); err != nil {
		return err
	}
	_, err := fmt.Fprintln(f.writer)
	return err
}
