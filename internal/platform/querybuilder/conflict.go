package querybuilder

import "strings"

// ConflictClause renders an ON CONFLICT ... suffix for InsertBuilder and
// InsertModel.
type ConflictClause struct {
	target    []string
	doNothing bool
	sets      []string
	where     []string
	returning []string
}

func OnConflict(target ...string) *ConflictClause {
	return &ConflictClause{target: append([]string(nil), target...)}
}

func (c *ConflictClause) DoNothing() *ConflictClause {
	c.doNothing = true
	return c
}

// Set assigns an SQL expression; EXCLUDED.<col> refers to the proposed row.
func (c *ConflictClause) Set(column, expr string) *ConflictClause {
	c.sets = append(c.sets, column+" = "+expr)
	return c
}

// SetExcluded overwrites each column with the proposed value.
func (c *ConflictClause) SetExcluded(columns ...string) *ConflictClause {
	for _, col := range columns {
		c.Set(col, "EXCLUDED."+col)
	}
	return c
}

// Where limits the update; rows failing it are left untouched and not returned.
func (c *ConflictClause) Where(expr string) *ConflictClause {
	c.where = append(c.where, expr)
	return c
}

func (c *ConflictClause) Returning(columns ...string) *ConflictClause {
	c.returning = append(c.returning, columns...)
	return c
}

func (c *ConflictClause) String() string {
	var buf strings.Builder
	buf.WriteString("ON CONFLICT")
	if len(c.target) > 0 {
		buf.WriteString(" (")
		buf.WriteString(strings.Join(c.target, ", "))
		buf.WriteString(")")
	}

	switch {
	case c.doNothing || len(c.sets) == 0:
		buf.WriteString(" DO NOTHING")
	default:
		buf.WriteString(" DO UPDATE SET ")
		buf.WriteString(strings.Join(c.sets, ", "))
		if len(c.where) > 0 {
			buf.WriteString(" WHERE ")
			buf.WriteString(strings.Join(c.where, " AND "))
		}
	}

	if len(c.returning) > 0 {
		buf.WriteString(" RETURNING ")
		buf.WriteString(strings.Join(c.returning, ", "))
	}
	return buf.String()
}
