package toolserver

import (
	"fmt"
	"strings"
	"time"

	"github.com/xolan/tock/internal/entry"
	"github.com/xolan/tock/internal/service"
)

const timeLayout = "2006-01-02 15:04"

// target renders "Project / Task" or just the project.
func target(l service.Labels) string {
	if l.TaskName == "" {
		return l.ProjectName
	}
	return l.ProjectName + " / " + l.TaskName
}

func renderStart(res *service.StartResult) string {
	var b strings.Builder
	if res.AutoStopped != nil {
		fmt.Fprintf(&b, "Stopped previous timer for %s after %s (entry %s).\n",
			target(res.AutoStopped.Labels),
			entry.FormatDuration(res.AutoStopped.Entry.Duration),
			res.AutoStopped.Entry.ID)
	}
	fmt.Fprintf(&b, "Started timer for %s at %s.\nEntry ID: %s",
		target(res.Labels), res.Entry.StartTime.Format(timeLayout), res.Entry.ID)
	return b.String()
}

func renderStop(res *service.StopResult) string {
	if !res.Stopped {
		return "No timer is running."
	}
	e := res.Entry
	return fmt.Sprintf("Stopped timer for %s.\nDuration: %s (%s - %s)\nEntry ID: %s",
		target(res.Labels),
		entry.FormatDuration(e.Duration),
		e.StartTime.Format(timeLayout),
		formatEnd(e.EndTime),
		e.ID)
}

func renderStatus(st *service.TimerStatus) string {
	if !st.Running {
		return "No timer is running."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Timer running for %s.\nElapsed: %s (since %s)\n",
		target(st.Labels), entry.FormatDuration(st.ElapsedMinutes), st.Entry.StartTime.Format(timeLayout))
	if st.Entry.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", st.Entry.Notes)
	}
	fmt.Fprintf(&b, "Entry ID: %s", st.Entry.ID)
	return b.String()
}

func renderLog(res *service.LogResult) string {
	e := res.Entry
	return fmt.Sprintf("Logged %s for %s (%s - %s).\nEntry ID: %s",
		entry.FormatDuration(e.Duration),
		target(res.Labels),
		e.StartTime.Format(timeLayout),
		formatEnd(e.EndTime),
		e.ID)
}

func renderUpdate(res *service.UpdateResult) string {
	e := res.Entry
	return fmt.Sprintf("Updated %s of entry %s.\n%s: %s (%s - %s)",
		strings.Join(res.Changed, ", "),
		e.ID,
		target(res.Labels),
		entry.FormatDuration(e.Duration),
		e.StartTime.Format(timeLayout),
		formatEnd(e.EndTime))
}

func renderDelete(res *service.LabeledEntry) string {
	return fmt.Sprintf("Deleted entry %s (%s, %s).",
		res.Entry.ID, target(res.Labels), entry.FormatDuration(res.Entry.Duration))
}

func renderSummary(res *service.SummaryResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Time summary for %s (%s to %s)\n",
		res.Period.Label(), res.Start.Format("2006-01-02"), res.End.Format("2006-01-02"))

	if res.EntryCount == 0 {
		b.WriteString("No time tracked.")
		return b.String()
	}

	for _, p := range res.Projects {
		fmt.Fprintf(&b, "- %s: %s (%d %s)\n",
			p.ProjectName, entry.FormatDuration(p.TotalMinutes), p.EntryCount, plural(p.EntryCount, "entry", "entries"))
	}
	fmt.Fprintf(&b, "Total: %s across %d %s on %d %s",
		entry.FormatDuration(res.TotalMinutes), res.EntryCount, plural(res.EntryCount, "entry", "entries"),
		res.Days, plural(res.Days, "day", "days"))
	return b.String()
}

func renderProjects(projects []entry.Project) string {
	if len(projects) == 0 {
		return "No projects found."
	}
	var b strings.Builder
	b.WriteString("Projects:")
	for _, p := range projects {
		fmt.Fprintf(&b, "\n- %s (ID: %s)", p.Name, p.ID)
	}
	return b.String()
}

func renderTasks(tasks []entry.Task) string {
	if len(tasks) == 0 {
		return "No tasks found."
	}
	var b strings.Builder
	b.WriteString("Tasks:")
	for _, t := range tasks {
		fmt.Fprintf(&b, "\n- %s (ID: %s, project: %s)", t.Name, t.ID, t.ProjectID)
	}
	return b.String()
}

func formatEnd(t *time.Time) string {
	if t == nil {
		return "running"
	}
	return t.Format(timeLayout)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
