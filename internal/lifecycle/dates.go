package lifecycle

import "time"

// DateOnly truncates t to midnight UTC. All contract and invoice date
// arithmetic happens on day granularity.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FirstOfNextMonth returns the first day of the month after d. A contract
// approved any day in March starts on April 1st.
func FirstOfNextMonth(d time.Time) time.Time {
	y, m, _ := d.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}

// AddMonths adds whole calendar months to d, clamping the day to the last
// valid day of the target month (Jan 31 + 1 month = Feb 29 in a leap
// year, Feb 28 otherwise). time.AddDate would overflow into the next
// month instead.
func AddMonths(d time.Time, months int) time.Time {
	y, m, day := d.Date()
	total := int(m) - 1 + months
	targetYear := y + total/12
	targetMonth := time.Month(total%12 + 1)
	if last := daysIn(targetYear, targetMonth); day > last {
		day = last
	}
	return time.Date(targetYear, targetMonth, day, 0, 0, 0, 0, d.Location())
}

// daysIn returns the number of days in the given month. Day zero of the
// following month normalizes to the last day of this one.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
