package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/patrickwarner/oxclient/internal/catalog"
	"github.com/patrickwarner/oxclient/internal/reporting"
)

const rule = "───────────────────────────────────────────────────────────────────────────────"

// printSummary writes a performance report: totals, the daily breakdown and
// the top busiest days.
func printSummary(w io.Writer, s *reporting.Summary, top int) {
	fmt.Fprintf(w, "%s %d performance\n", strings.ToUpper(string(s.Kind)), s.ID)
	if len(s.Daily) == 0 {
		fmt.Fprintln(w, "No statistics recorded for this period.")
		return
	}
	fmt.Fprintf(w, "Period: %s to %s\n", s.From.Format("2006-01-02"), s.To.Format("2006-01-02"))
	fmt.Fprintln(w, rule)

	t := s.Total
	fmt.Fprintf(w, "Requests:     %s\n", formatNumber(t.Requests))
	fmt.Fprintf(w, "Impressions:  %s\n", formatNumber(t.Impressions))
	fmt.Fprintf(w, "Clicks:       %s\n", formatNumber(t.Clicks))
	fmt.Fprintf(w, "Conversions:  %s\n", formatNumber(t.Conversions))
	fmt.Fprintf(w, "Revenue:      %.2f\n", t.Revenue)
	fmt.Fprintf(w, "CTR:          %.2f%%\n", t.CTR)
	fmt.Fprintf(w, "eCPM:         %.2f\n\n", t.ECPM)

	fmt.Fprintln(w, "Date       | Impressions | Clicks |   CTR   |  Revenue  |  eCPM")
	fmt.Fprintln(w, "-----------|-------------|--------|---------|-----------|--------")
	for _, d := range s.Daily {
		printDay(w, d)
	}

	if top > 0 && len(s.Daily) > 1 {
		fmt.Fprintf(w, "\nBusiest days\n%s\n", rule)
		for _, d := range s.TopDays(top) {
			printDay(w, d)
		}
	}
}

func printDay(w io.Writer, d reporting.DailyMetrics) {
	fmt.Fprintf(w, "%-10s | %11s | %6s | %6.2f%% | %9.2f | %6.2f\n",
		d.Day.Format("2006-01-02"),
		formatNumber(d.Impressions),
		formatNumber(d.Clicks),
		d.CTR,
		d.Revenue,
		d.ECPM,
	)
}

func printSyncResult(w io.Writer, res *catalog.Result) {
	fmt.Fprintln(w, "Kind        | Stored | Pruned")
	fmt.Fprintln(w, "------------|--------|-------")
	for _, kind := range catalog.SyncedKinds() {
		fmt.Fprintf(w, "%-11s | %6d | %6d\n", kind, res.Stored[kind], res.Pruned[kind])
	}
	if res.Skipped > 0 {
		fmt.Fprintf(w, "%d entities without an id were skipped\n", res.Skipped)
	}
}

// formatNumber formats integers with comma thousands separators,
// e.g. 1234567 becomes "1,234,567".
func formatNumber(n int64) string {
	str := fmt.Sprintf("%d", n)
	sign := ""
	if n < 0 {
		sign, str = "-", str[1:]
	}
	if len(str) <= 3 {
		return sign + str
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, digit := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	return b.String()
}
