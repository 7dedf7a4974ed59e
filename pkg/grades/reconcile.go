package grades

// Reconcile compares the freshly scraped set against the previously persisted one
// and returns the notifications to send, in the order of current.Records.
//
// A nil previous means no snapshot existed yet. The first run only establishes the
// baseline, so nothing is reported. Courses that disappeared from current are never
// reported.
func Reconcile(current Set, previous *Set) []Notification {
	if previous == nil {
		return nil
	}

	var notifications []Notification
	for _, r := range current.Records {
		p, found := FindByCode(previous.Records, r.CourseCode)
		if !found {
			notifications = append(notifications, NewCourse(r))
			continue
		}
		if p.Grade != r.Grade {
			notifications = append(notifications, GradeChanged(p, r))
		}
	}

	return notifications
}

// FindByCode returns the first record in records with the given course code.
// This is a linear first-match search: when records contains duplicate codes, the
// earliest one wins and later duplicates are never consulted.
func FindByCode(records []Record, code string) (Record, bool) {
	for _, r := range records {
		if r.CourseCode == code {
			return r, true
		}
	}
	return Record{}, false
}

// Reportable reports whether a grade should reach the engine at all.
func Reportable(grade string) bool {
	return grade != Approved
}

// FilterReportable drops every record whose grade is not reportable, keeping order.
func FilterReportable(records []Record) []Record {
	var kept []Record
	for _, r := range records {
		if Reportable(r.Grade) {
			kept = append(kept, r)
		}
	}
	return kept
}

// DuplicateCodes returns the course codes that appear more than once in records,
// in the order their first duplicate was seen.
func DuplicateCodes(records []Record) []string {
	seen := make(map[string]int)
	var dups []string

	for _, r := range records {
		seen[r.CourseCode]++
		if seen[r.CourseCode] == 2 {
			dups = append(dups, r.CourseCode)
		}
	}

	return dups
}
