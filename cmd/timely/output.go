package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/chris/timely/internal/db"
	"github.com/chris/timely/internal/domain"
	"github.com/chris/timely/internal/prompt"
)

func printResult(w io.Writer, res domain.Result) {
	fmt.Fprintln(w, res.Response)
	switch {
	case res.Fallback:
		fmt.Fprintln(w, "\n(offline suggestion)")
	case res.TokensUsed != nil:
		fmt.Fprintf(w, "\n(%s tokens)\n", humanize.Comma(int64(*res.TokensUsed)))
	}
}

func printTasks(w io.Writer, tasks []db.Task, now time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No open tasks.")
		return
	}
	total := 0
	for _, t := range tasks {
		fmt.Fprintf(w, "%s %s  %s  (~%dmin, %s)  added %s\n",
			prompt.Marker(t.Priority), t.ID[:8], t.Title, t.EstimatedDuration, t.Priority, since(t.CreatedAt, now))
		total += t.EstimatedDuration
	}
	fmt.Fprintf(w, "\n%d %s, about %s of work\n", len(tasks), plural(len(tasks), "task"), minutes(total))
}

func printHistory(w io.Writer, checkIns []db.CheckIn, now time.Time) {
	if len(checkIns) == 0 {
		fmt.Fprintln(w, "No suggestions yet.")
		return
	}
	for _, c := range checkIns {
		source := "llm"
		if c.Fallback {
			source = "fallback"
		} else if c.TokensUsed != nil {
			source = fmt.Sprintf("llm, %s tokens", humanize.Comma(int64(*c.TokensUsed)))
		}
		first, _, _ := strings.Cut(c.Response, "\n")
		fmt.Fprintf(w, "#%d %s  %s  (%s)\n    %s\n", c.ID, c.Intent, since(c.CreatedAt, now), source, first)
	}
}

func since(stamp string, now time.Time) string {
	t, err := db.ParseTime(stamp)
	if err != nil {
		return stamp
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

func minutes(total int) string {
	if total < 60 {
		return fmt.Sprintf("%d min", total)
	}
	return fmt.Sprintf("%dh%02d", total/60, total%60)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
