package notify

import (
	"strings"
	"text/template"
	"time"

	"studentweb/pkg/grades"
)

// ScreenshotName is the file name used for the attached results page screenshot
const ScreenshotName = "results.png"

// Batch holds the notifications produced for one variant
type Batch struct {
	Variant       grades.Variant
	Notifications []grades.Notification
}

// Message is a rendered notification ready for delivery
type Message struct {
	Subject    string
	Body       string
	Screenshot []byte // optional PNG attachment
}

// Empty reports whether none of the batches carry notifications.
func Empty(batches []Batch) bool {
	for _, b := range batches {
		if len(b.Notifications) > 0 {
			return false
		}
	}
	return true
}

var bodyTemplate = template.Must(template.New("body").Parse(`
{{- define "record"}}Term: {{.Term}}
Course: {{.CourseCode}} {{.CourseName}}
Grade: {{.Grade}}{{end}}
{{- range .}}{{if .Heading}}
--- {{.Heading}} ---
{{end}}{{range .Notifications}}{{if .Previous}}
Change in grade registered

Previous grade:
{{template "record" .Previous}}

Changed grade:
{{template "record" .Current}}
{{else}}
New grade registered

{{template "record" .Current}}
{{end}}{{end}}{{end}}`))

type batchView struct {
	Heading       string
	Notifications []grades.Notification
}

// Render builds the message for the given batches. Notifications are rendered in
// the order they are given; empty batches are left out.
func Render(date time.Time, batches []Batch, screenshot []byte) Message {
	var views []batchView
	for _, b := range batches {
		if len(b.Notifications) == 0 {
			continue
		}
		view := batchView{Notifications: b.Notifications}
		if b.Variant == grades.Partial {
			view.Heading = "Partial results"
		}
		views = append(views, view)
	}

	var body strings.Builder
	// The template only reads fields of in-memory values, execution cannot fail
	_ = bodyTemplate.Execute(&body, views)

	return Message{
		Subject:    "StudentWeb: grade changes " + date.Format("2006-01-02"),
		Body:       body.String(),
		Screenshot: screenshot,
	}
}
