package scraper

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"studentweb/pkg/grades"
)

var (
	// ErrTableNotFound is returned when the page has no full results table,
	// usually because the login or the view toggle did not go through.
	ErrTableNotFound = errors.New("results table not found")
	// ErrUnexpectedLayout is returned when a result row does not have the expected cells.
	ErrUnexpectedLayout = errors.New("unexpected result row layout")
)

// Column positions inside a result row
const (
	termCell   = 0
	courseCell = 1
	gradeCell  = 5
)

// termLine is the line of the term cell's text that holds the term name
const termLine = 3

// ParseResults extracts the grade sets of every tracked variant from the results page.
// Approved ("Godkjent") entries are dropped before they are returned.
func ParseResults(r io.Reader, tables TableIDs) (map[grades.Variant]grades.Set, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse results page: %w", err)
	}

	sets := make(map[grades.Variant]grades.Set)
	for _, variant := range tables.Tracked() {
		table := doc.Find(fmt.Sprintf("table[id=%q]", tables[variant])).First()
		if table.Length() == 0 {
			if variant == grades.Full {
				return nil, fmt.Errorf("%w: %s", ErrTableNotFound, tables[variant])
			}
			// No interim results registered for this student
			sets[variant] = grades.Set{Variant: variant}
			continue
		}

		records, err := parseTable(table)
		if err != nil {
			return nil, fmt.Errorf("%s results: %w", variant, err)
		}

		sets[variant] = grades.Set{
			Variant: variant,
			Records: grades.FilterReportable(records),
		}
	}

	return sets, nil
}

func parseTable(table *goquery.Selection) ([]grades.Record, error) {
	var records []grades.Record
	var parseErr error

	table.Find("tbody").First().ChildrenFiltered("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		// Detail rows share the result class, only the header row of each course is read
		if classes := strings.Fields(row.AttrOr("class", "")); len(classes) > 0 && classes[0] == "resultat" {
			return true
		}

		rec, err := parseRow(row)
		if err != nil {
			parseErr = fmt.Errorf("row %d: %w", i, err)
			return false
		}
		records = append(records, rec)
		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}
	return records, nil
}

func parseRow(row *goquery.Selection) (grades.Record, error) {
	cells := row.Find("td")
	if cells.Length() <= gradeCell {
		return grades.Record{}, fmt.Errorf("%w: %d cells", ErrUnexpectedLayout, cells.Length())
	}

	course := cells.Eq(courseCell).Find("div.infoLinje")
	if course.Length() < 2 {
		return grades.Record{}, fmt.Errorf("%w: missing course code or name", ErrUnexpectedLayout)
	}

	grade := cells.Eq(gradeCell).Find("div.infoLinje").First()
	if grade.Length() == 0 {
		return grades.Record{}, fmt.Errorf("%w: missing grade", ErrUnexpectedLayout)
	}

	return grades.Record{
		Term:       parseTerm(cells.Eq(termCell).Text()),
		CourseCode: strings.TrimSpace(course.Eq(0).Text()),
		CourseName: strings.TrimSpace(course.Eq(1).Text()),
		Grade:      strings.TrimSpace(grade.Text()),
	}, nil
}

// parseTerm picks the term out of the term cell, falling back to its last
// non-empty line when the cell is shorter than usual.
func parseTerm(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > termLine {
		if term := strings.TrimSpace(lines[termLine]); term != "" {
			return term
		}
	}

	for i := len(lines) - 1; i >= 0; i-- {
		if term := strings.TrimSpace(lines[i]); term != "" {
			return term
		}
	}
	return ""
}
