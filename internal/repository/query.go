package repository

import (
	"fmt"
	"strings"
)

// whereBuilder accumulates AND-ed conditions with positional arguments.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(format string, value any) {
	w.args = append(w.args, value)
	w.conds = append(w.conds, fmt.Sprintf(format, len(w.args)))
}

func (w *whereBuilder) clause() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page appends OFFSET and LIMIT placeholders and returns the SQL suffix.
func (w *whereBuilder) page(offset int, limit int) string {
	w.args = append(w.args, offset, limit)
	return fmt.Sprintf(" OFFSET $%d LIMIT $%d", len(w.args)-1, len(w.args))
}
