package grades

// Approved is the pass/fail status StudentWeb shows for ungraded courses.
// Records carrying it are not reportable and are dropped at ingestion.
const Approved = "Godkjent"

// Variant identifies which results table a set was scraped from
type Variant string

const (
	Full    Variant = "full"    // final course grades
	Partial Variant = "partial" // interim/partial-credit results
)

// Variants lists every variant in the order they are processed and reported.
var Variants = []Variant{Full, Partial}

// Record is one observed grade for one course instance
type Record struct {
	Term       string `json:"term"`        // e.g. "2024 Vår"
	CourseName string `json:"course_name"` // e.g. "Programmering"
	CourseCode string `json:"course_code"` // comparison key, e.g. "DATA1100"
	Grade      string `json:"grade"`       // "A".."F" or a partial-credit marker
}

// Set is the ordered collection of records from one run for one variant
type Set struct {
	Variant Variant  `json:"variant"`
	Records []Record `json:"records"`
}

// Kind tags a Notification
type Kind int

const (
	New Kind = iota
	Changed
)

func (k Kind) String() string {
	switch k {
	case New:
		return "new"
	case Changed:
		return "changed"
	default:
		return "unknown"
	}
}

// Notification is a single reportable difference between two sets.
// Previous is only set for Changed notifications.
type Notification struct {
	Kind     Kind
	Previous *Record
	Current  Record
}

// NewCourse builds a New notification for r.
func NewCourse(r Record) Notification {
	return Notification{Kind: New, Current: r}
}

// GradeChanged builds a Changed notification from prev to cur.
func GradeChanged(prev, cur Record) Notification {
	return Notification{Kind: Changed, Previous: &prev, Current: cur}
}
