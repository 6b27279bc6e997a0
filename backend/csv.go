package backend

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"

	"git.sr.ht/~whereswaldon/hedgechart/plot"
)

// seriesBuilder accumulates samples decoded from CSV records.
type seriesBuilder struct {
	timestamps []float64
	values     []float64
	// dirty is set when samples were added since the last snapshot.
	dirty bool
}

// add decodes one record. Records with an empty value cell are skipped;
// malformed or non-finite records are logged and skipped.
func (b *seriesBuilder) add(rec []string) {
	if len(rec) < 2 {
		log.Printf("skipping short record %q", rec)
		return
	}
	ts, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
	if err != nil {
		log.Printf("failed parsing timestamp %q: %v", rec[0], err)
		return
	}
	cell := strings.TrimSpace(rec[1])
	if len(cell) < 1 {
		// Skip null cells.
		return
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		log.Printf("failed parsing value %q: %v", rec[1], err)
		return
	}
	if !finite(ts) || !finite(v) {
		log.Printf("skipping non-finite sample %q", rec[:2])
		return
	}
	if n := len(b.timestamps); n > 0 && ts < b.timestamps[n-1] {
		log.Printf("skipping out of order sample at %v", ts)
		return
	}
	b.timestamps = append(b.timestamps, ts)
	b.values = append(b.values, v)
	b.dirty = true
}

// snapshot returns an immutable copy of the samples gathered so far.
func (b *seriesBuilder) snapshot() plot.Series {
	b.dirty = false
	return plot.NewSeries(b.timestamps, b.values)
}

func (b *seriesBuilder) len() int { return len(b.timestamps) }

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func newCSVReader(r io.Reader) *csv.Reader {
	csvReader := csv.NewReader(r)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	return csvReader
}

// isHeader reports whether rec is a heading row rather than a sample.
func isHeader(rec []string) bool {
	if len(rec) == 0 {
		return true
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
	return err != nil
}

// ReadSeries decodes a complete CSV series. The first column holds
// timestamps in seconds and the second the values. An optional heading row
// is skipped.
func ReadSeries(r io.Reader) (plot.Series, error) {
	csvReader := newCSVReader(r)
	var b seriesBuilder
	first := true
	for {
		rec, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				log.Printf("skipping malformed csv line: %v", err)
				continue
			}
			return plot.Series{}, fmt.Errorf("failed reading csv series: %w", err)
		}
		if first {
			first = false
			if isHeader(rec) {
				continue
			}
		}
		b.add(rec)
	}
	return b.snapshot(), nil
}
