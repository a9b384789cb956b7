package rao

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

const (
	headingMarker = "#HEADING"
	dataMarker    = "w(r/s)"
)

// ParseError reports a malformed response table. A table that fails to parse
// is unusable for its whole (dof, speed) file; the caller must not feed the
// affected combination into the PSD stages.
type ParseError struct {
	File   string
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("response table %s:%d: %s", e.File, e.Line, e.Reason)
	}
	return fmt.Sprintf("response table %s: %s", e.File, e.Reason)
}

type tableRow struct {
	freq  float64
	amp   []float64
	phase []float64
}

// table is one parsed RAO file: all headings, all rows, not yet restricted to
// a single heading column.
type table struct {
	file     string
	headings []float64
	rows     []tableRow
}

// parseTable reads the #HEADING header, skips ahead to the w(r/s) marker,
// and parses every data row. Blank lines and comment lines inside the data
// block are ignored.
func parseTable(r io.Reader, file string) (*table, error) {
	t := &table{file: file}
	scanner := bufio.NewScanner(r)

	inData := false
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, headingMarker) {
			headings, err := parseFloatFields(strings.Fields(line)[1:])
			if err != nil {
				return nil, &ParseError{File: file, Line: lineNo, Reason: fmt.Sprintf("bad heading list: %v", err)}
			}
			t.headings = headings
			continue
		}

		if !inData {
			if strings.Contains(line, dataMarker) {
				inData = true
			}
			continue
		}

		if strings.HasPrefix(line, "#") {
			continue
		}

		row, err := parseDataRow(line, len(t.headings))
		if err != nil {
			return nil, &ParseError{File: file, Line: lineNo, Reason: err.Error()}
		}
		t.rows = append(t.rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read response table %s: %w", file, err)
	}

	switch {
	case len(t.headings) == 0:
		return nil, &ParseError{File: file, Reason: "missing " + headingMarker + " header"}
	case !inData:
		return nil, &ParseError{File: file, Reason: "missing " + dataMarker + " data marker"}
	case len(t.rows) == 0:
		return nil, &ParseError{File: file, Reason: "no data rows"}
	}

	// Stable sort keeps file order for duplicate frequencies.
	sort.SliceStable(t.rows, func(i, j int) bool { return t.rows[i].freq < t.rows[j].freq })
	return t, nil
}

// parseDataRow splits a row into frequency, n amplitudes, n phases.
func parseDataRow(line string, n int) (tableRow, error) {
	fields := strings.Fields(line)
	if len(fields) < 1+2*n {
		return tableRow{}, fmt.Errorf("row has %d columns, want %d (freq + %d amplitudes + %d phases)", len(fields), 1+2*n, n, n)
	}
	vals, err := parseFloatFields(fields[: 1+2*n])
	if err != nil {
		return tableRow{}, err
	}
	return tableRow{freq: vals[0], amp: vals[1 : 1+n], phase: vals[1+n : 1+2*n]}, nil
}

func parseFloatFields(fields []string) ([]float64, error) {
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("column %d: %q is not a number", i+1, f)
		}
		vals[i] = v
	}
	return vals, nil
}

// column extracts the amplitude and unwrapped phase for one tabulated
// heading. The heading must match a header entry exactly (the caller snaps
// to the tabulated set first).
func (t *table) column(heading float64) (freq, amp, phase []float64, err error) {
	col := -1
	for i, h := range t.headings {
		if math.Abs(h-heading) < 1e-9 {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, nil, nil, &ParseError{File: t.file, Reason: fmt.Sprintf("heading %g not tabulated (have %v)", heading, t.headings)}
	}

	n := len(t.rows)
	freq = make([]float64, n)
	amp = make([]float64, n)
	phase = make([]float64, n)
	for i, row := range t.rows {
		freq[i] = row.freq
		amp[i] = row.amp[col]
		phase[i] = normalizePhase(row.phase[col])
	}
	unwrapPhase(phase)
	return freq, amp, phase, nil
}

// normalizePhase maps a phase in degrees into (−180, 180].
func normalizePhase(deg float64) float64 {
	p := math.Mod(deg, 360)
	switch {
	case p > 180:
		p -= 360
	case p <= -180:
		p += 360
	}
	return p
}

// unwrapPhase removes ±360° jumps in place. Input phases are already
// normalized, so consecutive raw steps are under 360° in magnitude and a
// single ±360 adjustment per step suffices; after unwrapping, no consecutive
// delta exceeds 180°.
func unwrapPhase(phase []float64) {
	var offset float64
	prev := 0.0
	for i, p := range phase {
		if i > 0 {
			step := p - prev
			if step > 180 {
				offset -= 360
			} else if step < -180 {
				offset += 360
			}
		}
		prev = p
		phase[i] = p + offset
	}
}
