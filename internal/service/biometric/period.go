package biometric

import (
	"regexp"
	"time"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/biometric"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/pkg/validator"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/pkg/workbook"
)

const periodScanRows = 5

var periodPattern = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})\s*[~\-–]\s*(\d{4}-\d{2}-\d{2})`)

// ExtractPeriod finds the first "YYYY-MM-DD ~ YYYY-MM-DD" range in the top
// rows. Without one it returns the calendar month containing now.
func ExtractPeriod(rows [][]workbook.Cell, now time.Time) biometric.ReportingPeriod {
	limit := min(periodScanRows, len(rows))
	for i := 0; i < limit; i++ {
		for _, c := range rows[i] {
			if c.Kind != workbook.CellString {
				continue
			}
			if period, ok := parsePeriod(c.Text); ok {
				return period
			}
		}
	}
	return currentMonth(now)
}

func parsePeriod(text string) (biometric.ReportingPeriod, bool) {
	for _, m := range periodPattern.FindAllStringSubmatch(text, -1) {
		start, ok := validator.IsValidDate(m[1])
		if !ok {
			continue
		}
		end, ok := validator.IsValidDate(m[2])
		if !ok {
			continue
		}
		if end.Before(start) {
			start, end = end, start
		}
		return biometric.ReportingPeriod{Start: start, End: end}, true
	}
	return biometric.ReportingPeriod{}, false
}

func currentMonth(now time.Time) biometric.ReportingPeriod {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return biometric.ReportingPeriod{
		Start: start,
		End:   start.AddDate(0, 1, -1),
	}
}
