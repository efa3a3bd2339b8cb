package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/seededrand/internal/check"
	"github.com/lox/seededrand/internal/plan"
	"github.com/lox/seededrand/internal/statistics"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	stepStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	cellStyle = lipgloss.NewStyle().Padding(0, 1)
)

// renderResults prints plan results as one table per step
func renderResults(w io.Writer, results []plan.Result) error {
	for _, r := range results {
		title := stepStyle.Render(r.Step) + " " + mutedStyle.Render(fmt.Sprintf("%s, stream %#x", r.Kind, r.Stream))

		width := 0
		for _, s := range r.Samples {
			width = max(width, len(s.Values))
		}
		headers := []string{"#"}
		hasLabel := false
		for _, s := range r.Samples {
			if s.Label != "" {
				hasLabel = true
				break
			}
		}
		if hasLabel {
			headers = append(headers, "label")
		}
		for i := 0; i < width; i++ {
			headers = append(headers, "v"+strconv.Itoa(i))
		}

		rows := make([][]string, 0, len(r.Samples))
		for _, s := range r.Samples {
			row := []string{strconv.Itoa(s.Index)}
			if hasLabel {
				row = append(row, s.Label)
			}
			for _, v := range s.Values {
				row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
			}
			rows = append(rows, row)
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(mutedStyle).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle.Padding(0, 1)
				}
				return cellStyle
			}).
			Headers(headers...).
			Rows(rows...)

		if _, err := fmt.Fprintf(w, "%s\n%s\n", title, t.Render()); err != nil {
			return err
		}
		for i, sum := range columnSummaries(r) {
			if err := sum.Validate(); err != nil {
				continue
			}
			lo, hi := sum.ConfidenceInterval95()
			line := fmt.Sprintf("v%d: mean %.6f, 95%% CI [%.6f, %.6f], median %.6f, range [%.6f, %.6f]",
				i, sum.Mean(), lo, hi, sum.Median(), sum.Min(), sum.Max())
			if _, err := fmt.Fprintln(w, mutedStyle.Render(line)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// columnSummaries accumulates each value column of a step's samples
func columnSummaries(r plan.Result) []*statistics.Summary {
	var sums []*statistics.Summary
	for _, s := range r.Samples {
		for i, v := range s.Values {
			for len(sums) <= i {
				sums = append(sums, &statistics.Summary{})
			}
			sums[i].Add(v)
		}
	}
	return sums
}

// renderReport prints a check report
func renderReport(w io.Writer, report check.Report) error {
	rows := make([][]string, 0, len(report.Results))
	failed := 0
	for _, res := range report.Results {
		status := passStyle.Render("PASS")
		if !res.Passed {
			status = failStyle.Render("FAIL")
			failed++
		}
		rows = append(rows, []string{status, res.Name, res.Detail, res.Duration.Round(time.Microsecond).String()})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		Headers("status", "check", "detail", "time").
		Rows(rows...)

	summary := passStyle.Render(fmt.Sprintf("%d checks passed", len(report.Results)))
	if failed > 0 {
		summary = failStyle.Render(fmt.Sprintf("%d of %d checks failed", failed, len(report.Results)))
	}
	_, err := fmt.Fprintf(w, "%s\n%s %s\n", t.Render(), summary, mutedStyle.Render("in "+report.Elapsed.Round(time.Millisecond).String()))
	return err
}
