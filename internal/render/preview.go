// Package render produces the read-only formatted preview of a trip
// document. The same rendering feeds the on-screen preview endpoint and
// the PDF exporter, so what gets exported is exactly what was previewed.
package render

import (
	"fmt"
	"strings"

	"github.com/dmarques/tripfolio/backend/internal/domain"
)

// Lines renders the document as a sequence of preview lines. The output
// is deterministic: same document, same lines.
func Lines(doc domain.TripDocument) []string {
	var out []string

	title := doc.Title
	if title == "" {
		title = "Untitled Trip"
	}
	out = append(out, title)
	if doc.Destination != "" {
		out = append(out, doc.Destination)
	}
	if !doc.StartDate.IsZero() {
		if doc.EndDate.IsZero() {
			out = append(out, "From "+doc.StartDate.String())
		} else {
			out = append(out, doc.StartDate.String()+" to "+doc.EndDate.String())
		}
	}
	if doc.Notes != "" {
		out = append(out, "", "Notes: "+doc.Notes)
	}

	out = append(out, "", "Itinerary")
	if len(doc.Itinerary) == 0 {
		out = append(out, "  (no days planned)")
	}
	for _, day := range doc.Itinerary {
		out = append(out, fmt.Sprintf("Day %d  %s", day.Day, day.Date))
		if len(day.Activities) == 0 {
			out = append(out, "  (no activities)")
		}
		for _, act := range day.Activities {
			clock := act.Time
			if clock == "" {
				clock = "--:--"
			}
			out = append(out, fmt.Sprintf("  %s  %s", clock, act.Description))
		}
	}

	b := doc.Budget
	out = append(out, "", fmt.Sprintf("Budget (%s)", b.Currency))
	for _, key := range domain.CategoryKeys {
		cat, _ := b.Category(key)
		out = append(out, fmt.Sprintf("  %-14s estimated %10.2f   actual %10.2f",
			key, cat.Estimated, cat.Actual))
	}
	out = append(out, fmt.Sprintf("  %-14s estimated %10.2f   actual %10.2f",
		"total", b.TotalEstimated(), b.TotalActual()))

	status := "Within Budget"
	if b.OverBudget() {
		status = "Over Budget"
	}
	out = append(out, "  Status: "+status)

	return out
}

// Preview renders the document as a single newline-joined string.
func Preview(doc domain.TripDocument) string {
	return strings.Join(Lines(doc), "\n")
}
