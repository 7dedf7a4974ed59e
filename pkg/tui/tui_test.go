package tui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentweb/pkg/config"
	"studentweb/pkg/grades"
	"studentweb/pkg/notify"
	"studentweb/pkg/snapshot"
	"studentweb/pkg/watch"
)

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	set := &grades.Set{Variant: grades.Full, Records: []grades.Record{
		{Term: "2024 HØST", CourseCode: "DATA1100", CourseName: "Programmering", Grade: "B"},
	}}

	PrintResults(&buf, grades.Full, set)

	out := buf.String()
	assert.Contains(t, out, "Full results")
	assert.Contains(t, out, "DATA1100")
	assert.Contains(t, out, "Programmering")
}

func TestPrintResults_NothingStored(t *testing.T) {
	var buf bytes.Buffer

	PrintResults(&buf, grades.Partial, nil)

	assert.Contains(t, buf.String(), "Partial results")
	assert.Contains(t, buf.String(), "Nothing stored yet")
}

func TestShowResults(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	require.NoError(t, snapshot.NewStore(cfg.DataDir).Save(grades.Set{
		Variant: grades.Full,
		Records: []grades.Record{{CourseCode: "DAVE3600", Grade: "A"}},
	}))

	var buf bytes.Buffer
	err := ShowResults(&buf, cfg, []grades.Variant{grades.Full, grades.Partial})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "DAVE3600")
	assert.Contains(t, buf.String(), "Nothing stored yet")
}

func TestPrintReport(t *testing.T) {
	tests := []struct {
		name   string
		report *watch.Report
		dryRun  bool
		want    []string
		notWant []string
	}{
		{
			name: "baseline",
			report: &watch.Report{
				Baseline: []grades.Variant{grades.Full},
				Current:  map[grades.Variant]grades.Set{grades.Full: {Records: make([]grades.Record, 3)}},
			},
			want: []string{"stored 3 course(s) as the baseline", "No changes in results found."},
		},
		{
			name: "dry run baseline",
			report: &watch.Report{
				Baseline: []grades.Variant{grades.Full},
				Current:  map[grades.Variant]grades.Set{grades.Full: {Records: make([]grades.Record, 3)}},
			},
			dryRun:  true,
			want:    []string{"3 course(s) would become the baseline"},
			notWant: []string{"stored"},
		},
		{
			name: "delivered",
			report: &watch.Report{
				Batches:   []notify.Batch{{Notifications: make([]grades.Notification, 2)}},
				Message:   &notify.Message{Subject: "s"},
				Delivered: true,
			},
			want: []string{"Sent 2 grade change(s) to student@example.com"},
		},
		{
			name:   "dry run",
			report: &watch.Report{Message: &notify.Message{Subject: "StudentWeb: grade changes", Body: "New grade registered"}},
			dryRun: true,
			want:   []string{"StudentWeb: grade changes", "New grade registered", "nothing was sent or saved"},
		},
		{
			name: "persist warning",
			report: &watch.Report{PersistWarnings: []watch.PersistWarning{
				{Variant: grades.Full, Err: errors.New("disk full")},
			}},
			want: []string{"Warning: save full snapshot: disk full"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			PrintReport(&buf, tt.report, "student@example.com", tt.dryRun)
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, buf.String(), w)
			}
		})
	}
}

func TestPrintConfig_MasksSecrets(t *testing.T) {
	cfg := config.Default()
	cfg.Portal.SSN = "01019912345"
	cfg.Portal.PIN = "1234"
	cfg.Mail.Password = "hunter2"

	var buf bytes.Buffer
	PrintConfig(&buf, cfg)

	out := buf.String()
	assert.Contains(t, out, "010199*****")
	assert.NotContains(t, out, "1234")
	assert.NotContains(t, out, "hunter2")
	assert.Contains(t, out, "Recipient:       Not set")
}

func TestValidators(t *testing.T) {
	assert.NoError(t, digits(11)("01019912345"))
	assert.Error(t, digits(11)("0101991234"))
	assert.Error(t, digits(11)("0101991234x"))
	assert.NoError(t, emailAddress("student@example.com"))
	assert.Error(t, emailAddress("student"))
	assert.NoError(t, portNumber("465"))
	assert.Error(t, portNumber("0"))
	assert.Error(t, notEmpty("  "))
}
