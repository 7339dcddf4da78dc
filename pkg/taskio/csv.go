package taskio

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/matzehuels/ganttline/pkg/errors"
)

// csvColumns maps accepted header names to record fields.
var csvColumns = map[string]func(*record, string){
	"id":       func(r *record, v string) { r.ID = v },
	"title":    func(r *record, v string) { r.Title = v },
	"start":    func(r *record, v string) { r.Start = v },
	"end":      func(r *record, v string) { r.End = v },
	"color":    func(r *record, v string) { r.Color = v },
	"colour":   func(r *record, v string) { r.Color = v },
	"assigned": func(r *record, v string) { r.Assignee = v },
	"assignee": func(r *record, v string) { r.Assignee = v },
	"info":     func(r *record, v string) { r.Info = v },
}

var csvHeader = []string{"ID", "Title", "Assigned", "Start", "End", "Color", "Info"}

func decodeCSV(r io.Reader) ([]record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read CSV header")
	}

	setters := make([]func(*record, string), len(header))
	seen := make(map[string]bool)
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		setters[i] = csvColumns[name]
		seen[name] = true
	}
	for _, need := range []string{"title", "start", "end"} {
		if !seen[need] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "CSV header is missing column %q (have %v)", need, header)
		}
	}

	var recs []record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read CSV")
		}
		var rec record
		for i, v := range row {
			if i < len(setters) && setters[i] != nil {
				setters[i](&rec, strings.TrimSpace(v))
			}
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func encodeCSV(w io.Writer, recs []record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range recs {
		if err := cw.Write([]string{r.ID, r.Title, r.Assignee, r.Start, r.End, r.Color, r.Info}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
