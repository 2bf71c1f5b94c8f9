package repository

import (
	"fmt"
	"strings"
	"time"
)

// whereBuilder accumulates AND-ed conditions with positional Postgres arguments.
type whereBuilder struct {
	conditions []string
	args       []interface{}
}

func (w *whereBuilder) eq(column, value string) {
	if value == "" {
		return
	}
	w.args = append(w.args, value)
	w.conditions = append(w.conditions, fmt.Sprintf("%s = $%d", column, len(w.args)))
}

func (w *whereBuilder) add(format string, value interface{}) {
	w.args = append(w.args, value)
	w.conditions = append(w.conditions, fmt.Sprintf(format, len(w.args)))
}

// dayRange bounds column to whole calendar days: from inclusive, to inclusive up to the end of its day.
func (w *whereBuilder) dayRange(column string, from, to *time.Time) {
	if from != nil {
		w.add(column+" >= $%d", *from)
	}
	if to != nil {
		w.add(column+" < $%d", to.AddDate(0, 0, 1))
	}
}

// dateRange bounds a date-typed column. The bounds are bound as calendar dates read in their own
// location, so a report zone west of UTC does not drop the first day of the range.
func (w *whereBuilder) dateRange(column string, from, to *time.Time) {
	if from != nil {
		w.add(column+" >= $%d::date", from.Format("2006-01-02"))
	}
	if to != nil {
		w.add(column+" <= $%d::date", to.Format("2006-01-02"))
	}
}

func (w *whereBuilder) String() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conditions, " AND ")
}
