package scraper

import "studentweb/pkg/grades"

// Default element ids of the StudentWeb results tables (Norwegian Bokmål UI)
const (
	DefaultFullTableID    = "resultatlisteForm:HeleResultater:resultaterPanel"
	DefaultPartialTableID = "resultatlisteForm:DelResultater:resultaterPanel"
)

// TableIDs maps each tracked variant to the id of the table holding it.
// A variant with an empty id is not tracked.
type TableIDs map[grades.Variant]string

// DefaultTableIDs tracks both the full and the partial results table.
func DefaultTableIDs() TableIDs {
	return TableIDs{
		grades.Full:    DefaultFullTableID,
		grades.Partial: DefaultPartialTableID,
	}
}

// Tracked returns the variants with a configured table, in report order.
func (t TableIDs) Tracked() []grades.Variant {
	var variants []grades.Variant
	for _, v := range grades.Variants {
		if t[v] != "" {
			variants = append(variants, v)
		}
	}
	return variants
}
