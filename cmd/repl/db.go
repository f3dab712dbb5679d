package main

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	// Drivers are linked into the REPL binary only; the exec package stays
	// driver-agnostic.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// maxRows caps how many result rows the REPL renders for a single run.
const maxRows = 1000

// formatRows scans a result set and renders it as an ASCII table. Every
// cell goes through sql.NullString so any driver value prints.
func formatRows(rows *sql.Rows) (string, error) {
	columns, err := rows.Columns()
	if err != nil {
		return "", fmt.Errorf("reading columns: %w", err)
	}

	var cells [][]string
	truncated := false
	for rows.Next() {
		if len(cells) >= maxRows {
			truncated = true
			break
		}
		raw := make([]sql.NullString, len(columns))
		dest := make([]any, len(columns))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return "", fmt.Errorf("scanning row: %w", err)
		}
		row := make([]string, len(columns))
		for i, v := range raw {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "NULL"
			}
		}
		cells = append(cells, row)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	out := formatTable(columns, cells)
	if truncated {
		out += fmt.Sprintf("(truncated at %d rows)\n", maxRows)
	}
	return out, nil
}

// formatTable lays out a header and rows with +---+ separators.
func formatTable(columns []string, rows [][]string) string {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = len(c)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	sep := tableSeparator(widths)
	b.WriteString(sep)
	b.WriteString("|")
	for i, c := range columns {
		fmt.Fprintf(&b, " %-*s |", widths[i], c)
	}
	b.WriteString("\n")
	b.WriteString(sep)
	for _, row := range rows {
		b.WriteString("|")
		for i, cell := range row {
			fmt.Fprintf(&b, " %-*s |", widths[i], cell)
		}
		b.WriteString("\n")
	}
	b.WriteString(sep)
	fmt.Fprintf(&b, "(%d rows)\n", len(rows))
	return b.String()
}

func tableSeparator(widths []int) string {
	var b strings.Builder
	b.WriteString("+")
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteString("+")
	}
	b.WriteString("\n")
	return b.String()
}

// sanitizeDSN masks the password in a connection string before it is echoed
// back to the terminal. URL-style and MySQL user:pass@tcp(...) forms are
// both handled.
func sanitizeDSN(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" && u.User != nil {
		if _, has := u.User.Password(); has {
			u.User = url.UserPassword(u.User.Username(), "****")
			return u.String()
		}
		return dsn
	}
	if at := strings.Index(dsn, "@"); at > 0 {
		cred := dsn[:at]
		if colon := strings.Index(cred, ":"); colon >= 0 {
			return cred[:colon] + ":****" + dsn[at:]
		}
	}
	return dsn
}
