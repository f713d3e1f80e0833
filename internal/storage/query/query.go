// Package query turns statement parts into SQL. It exists because
// grouping must be expressible next to the usual where/order/limit parts.
package query

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrOffsetWithoutLimit = errors.New(
	"trying to make query with offset and no limit, the offset would become a limit; " +
		"set a limit to use offset, a large number retrieves all rows from the offset on",
)

// Clause is a SQL fragment with "?" placeholders and the values bound to them.
type Clause struct {
	SQL  string
	Args []any
}

func C(sql string, args ...any) Clause {
	return Clause{SQL: sql, Args: args}
}

// And joins clauses with AND inside parentheses.
func And(clauses ...Clause) Clause {
	return join(" AND ", clauses)
}

// Or joins clauses with OR inside parentheses.
func Or(clauses ...Clause) Clause {
	return join(" OR ", clauses)
}

func join(sep string, clauses []Clause) Clause {
	parts := make([]string, 0, len(clauses))
	var args []any
	for _, c := range clauses {
		parts = append(parts, c.SQL)
		args = append(args, c.Args...)
	}

	return Clause{SQL: "(" + strings.Join(parts, sep) + ")", Args: args}
}

// Statement holds the parts of a SELECT statement.
type Statement struct {
	Keywords        []string
	Fields          []string
	Tables          []string
	Joins           []Clause
	Where           []Clause
	AdditionalWhere []Clause
	GroupBy         []string
	OrderBy         []string
	Limit           int
	Offset          int
}

// CommandParameters is the assembled form of a Statement.
type CommandParameters struct {
	SelectFields string
	FromTable    string
	WhereClause  string
	GroupBy      string
	OrderBy      string
	Limit        string
	Args         []any
}

func (s *Statement) CommandParameters() (CommandParameters, error) {
	if s.Offset > 0 && s.Limit <= 0 {
		return CommandParameters{}, ErrOffsetWithoutLimit
	}

	var p CommandParameters

	p.SelectFields = strings.TrimSpace(strings.Join(s.Keywords, " ") + " " + strings.Join(s.Fields, ","))

	from := strings.Join(s.Tables, " ")
	for _, j := range s.Joins {
		from += " " + j.SQL
		p.Args = append(p.Args, j.Args...)
	}
	p.FromTable = from

	where := "1=1"
	if len(s.Where) > 0 {
		parts := make([]string, 0, len(s.Where))
		for _, w := range s.Where {
			parts = append(parts, w.SQL)
			p.Args = append(p.Args, w.Args...)
		}
		where = strings.Join(parts, " AND ")
	}
	for _, w := range s.AdditionalWhere {
		where += " AND " + w.SQL
		p.Args = append(p.Args, w.Args...)
	}
	p.WhereClause = where

	p.GroupBy = strings.Join(s.GroupBy, ", ")
	p.OrderBy = strings.Join(s.OrderBy, ", ")

	if s.Limit > 0 {
		p.Limit = strconv.Itoa(s.Limit)
		if s.Offset > 0 {
			p.Limit += " OFFSET " + strconv.Itoa(s.Offset)
		}
	}

	return p, nil
}

// SQL renders the parameters with PostgreSQL placeholders.
func (p CommandParameters) SQL() string {
	var b strings.Builder

	b.WriteString("SELECT ")
	b.WriteString(p.SelectFields)
	b.WriteString(" FROM ")
	b.WriteString(p.FromTable)
	b.WriteString(" WHERE ")
	b.WriteString(p.WhereClause)
	if p.GroupBy != "" {
		b.WriteString(" GROUP BY ")
		b.WriteString(p.GroupBy)
	}
	if p.OrderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(p.OrderBy)
	}
	if p.Limit != "" {
		b.WriteString(" LIMIT ")
		b.WriteString(p.Limit)
	}

	return Rebind(b.String())
}

// Rebind replaces "?" placeholders with $1..$n in order of appearance.
func Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}

	return b.String()
}

// Querier is satisfied by *sql.DB and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

type Backend struct {
	db Querier
}

func NewBackend(db Querier) *Backend {
	return &Backend{db: db}
}

// Rows runs the statement directly.
func (b *Backend) Rows(ctx context.Context, s *Statement) (*sql.Rows, error) {
	const op = "storage.query.Rows"

	p, err := s.CommandParameters()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := b.db.QueryContext(ctx, p.SQL(), p.Args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return rows, nil
}

// PreparedRows prepares the statement and executes it with its bound args.
// The caller closes the returned rows; the prepared statement is released
// once the rows are exhausted.
func (b *Backend) PreparedRows(ctx context.Context, s *Statement) (*sql.Rows, error) {
	const op = "storage.query.PreparedRows"

	p, err := s.CommandParameters()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stmt, err := b.db.PrepareContext(ctx, p.SQL())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := stmt.QueryContext(ctx, p.Args...)
	if err != nil {
		stmt.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Closing a statement with open rows defers the release until the rows close.
	stmt.Close()

	return rows, nil
}
