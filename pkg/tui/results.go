package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"studentweb/pkg/config"
	"studentweb/pkg/grades"
	"studentweb/pkg/snapshot"
)

// ShowResults prints the stored snapshot of each variant
func ShowResults(w io.Writer, cfg *config.AppConfig, variants []grades.Variant) error {
	store := snapshot.NewStore(cfg.DataDir)
	for _, v := range variants {
		set, err := store.Load(v)
		if err != nil {
			return err
		}
		PrintResults(w, v, set)
	}
	return nil
}

// PrintResults renders one variant's snapshot as a table
func PrintResults(w io.Writer, variant grades.Variant, set *grades.Set) {
	title := cases.Title(language.Norwegian).String(string(variant)) + " results"
	fmt.Fprintln(w, accentStyle.Bold(true).Render("\n"+title))

	if set == nil {
		fmt.Fprintln(w, mutedStyle.Render("Nothing stored yet, run a check first."))
		return
	}
	if len(set.Records) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No graded courses."))
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Term", "Code", "Course", "Grade"})
	table.SetAutoWrapText(false)
	for _, r := range set.Records {
		table.Append([]string{r.Term, r.CourseCode, r.CourseName, r.Grade})
	}
	table.Render()
}

func runResultsTUI(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	return ShowResults(os.Stdout, cfg, cfg.Tables().Tracked())
}
