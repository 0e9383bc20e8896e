package matcher

import (
	"time"

	"github.com/veloxpay/reconciler/internal/domain/record"
)

const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD calendar date. Malformed or empty input
// reports ok=false and never surfaces an error to the caller.
func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// attachmentDates collects the parseable dates of an attachment in fixed
// order: invoicing, due, receiving. Unparseable fields are skipped; the
// result may be empty.
func attachmentDates(att record.Attachment) []time.Time {
	var dates []time.Time
	for _, raw := range []string{att.Data.InvoicingDate, att.Data.DueDate, att.Data.ReceivingDate} {
		if d, ok := parseDate(raw); ok {
			dates = append(dates, d)
		}
	}
	return dates
}

// daysBetween returns the absolute whole-day difference between two
// calendar dates parsed by parseDate.
func daysBetween(a, b time.Time) int {
	diff := int(a.Sub(b).Hours() / 24)
	if diff < 0 {
		return -diff
	}
	return diff
}
