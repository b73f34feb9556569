package handlers

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/emersion/go-ical"

	"github.com/xolan/tock/internal/cli"
	"github.com/xolan/tock/internal/entry"
	"github.com/xolan/tock/internal/service"
	"github.com/xolan/tock/internal/timeutil"
)

// Export formats
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatICS  = "ics"
)

// exportRecord is the flat shape written by the json and csv exports.
type exportRecord struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	ProjectName string     `json:"project_name"`
	TaskID      string     `json:"task_id,omitempty"`
	TaskName    string     `json:"task_name,omitempty"`
	SubtaskID   string     `json:"subtask_id,omitempty"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Duration    int        `json:"duration_minutes"`
	Notes       string     `json:"notes,omitempty"`
	IsManual    bool       `json:"is_manual"`
}

// ExportEntries writes the entries of a period to stdout in the given format
func ExportEntries(ctx context.Context, deps *cli.Deps, format string, period timeutil.Period, projectID string) {
	result, err := deps.Services.Timer.Entries(ctx, period, projectID)
	if err != nil {
		fail(deps, err, hints{})
		return
	}

	// Listings are newest first; exports read chronologically.
	entries := make([]service.LabeledEntry, len(result.Entries))
	for i, le := range result.Entries {
		entries[len(entries)-1-i] = le
	}

	switch format {
	case FormatJSON:
		err = writeJSON(deps.Stdout, entries)
	case FormatCSV:
		err = writeCSV(deps.Stdout, entries)
	case FormatICS:
		err = writeICS(deps.Stdout, entries, deps.Clock.Now())
	default:
		_, _ = fmt.Fprintf(deps.Stderr, "Error: unknown export format %q\n", format)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use one of json, csv or ics")
		deps.Exit(1)
		return
	}
	if err != nil {
		fail(deps, fmt.Errorf("failed to write %s export: %w", format, err), hints{})
	}
}

func toRecord(le service.LabeledEntry) exportRecord {
	e := le.Entry
	return exportRecord{
		ID:          e.ID,
		ProjectID:   e.ProjectID,
		ProjectName: le.ProjectName,
		TaskID:      e.TaskID,
		TaskName:    le.TaskName,
		SubtaskID:   e.SubtaskID,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Duration:    e.Duration,
		Notes:       e.Notes,
		IsManual:    e.IsManual,
	}
}

func writeJSON(w io.Writer, entries []service.LabeledEntry) error {
	records := make([]exportRecord, 0, len(entries))
	for _, le := range entries {
		records = append(records, toRecord(le))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

var csvHeader = []string{
	"id", "project_id", "project_name", "task_id", "task_name", "subtask_id",
	"start_time", "end_time", "duration_minutes", "notes", "is_manual",
}

func writeCSV(w io.Writer, entries []service.LabeledEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, le := range entries {
		r := toRecord(le)
		end := ""
		if r.EndTime != nil {
			end = r.EndTime.Format(time.RFC3339)
		}
		row := []string{
			r.ID, r.ProjectID, r.ProjectName, r.TaskID, r.TaskName, r.SubtaskID,
			r.StartTime.Format(time.RFC3339), end,
			strconv.Itoa(r.Duration), r.Notes, strconv.FormatBool(r.IsManual),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeICS emits one VEVENT per finished entry. The running timer has no
// end yet and is left out.
func writeICS(w io.Writer, entries []service.LabeledEntry, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//tock//time entries//EN")

	for _, le := range entries {
		e := le.Entry
		if e.IsActive() {
			continue
		}
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, e.ID+"@tock")
		event.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
		event.Props.SetDateTime(ical.PropDateTimeStart, e.StartTime.UTC())
		event.Props.SetDateTime(ical.PropDateTimeEnd, e.EndTime.UTC())
		event.Props.SetText(ical.PropSummary, fmt.Sprintf("%s (%s)", cli.FormatTarget(le.Labels), entry.FormatDuration(e.Duration)))
		if e.Notes != "" {
			event.Props.SetText(ical.PropDescription, e.Notes)
		}
		cal.Children = append(cal.Children, event.Component)
	}

	return ical.NewEncoder(w).Encode(cal)
}
