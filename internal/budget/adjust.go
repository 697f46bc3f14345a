package budget

// CreditStudyTime records time studied off the clock: the yearly debt goes
// down and the day's category counter goes up by the same amount.
func CreditStudyTime(l *Ledger, s *Stats, date string, cat Category, seconds int64) {
	l.Adjust(-seconds)
	s.Increment(date, cat, seconds)
}

// ApplyPenalty adds owed time back onto the yearly counter. Penalties are
// deliberately not attributed to any category, so daily stats are untouched.
func ApplyPenalty(l *Ledger, seconds int64) {
	l.Adjust(seconds)
}
