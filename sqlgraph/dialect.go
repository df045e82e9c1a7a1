// SPDX-License-Identifier: MIT
//
// File: dialect.go
// Role: per-driver SQL differences (placeholders, DDL, column types).

package sqlgraph

import (
	"fmt"
	"regexp"
	"strconv"
)

// Dialect selects the SQL flavor of the target database.
type Dialect int

const (
	// SQLite is github.com/mattn/go-sqlite3 ("sqlite3").
	SQLite Dialect = iota
	// MySQL is github.com/go-sql-driver/mysql ("mysql").
	MySQL
	// SQLServer is github.com/denisenkom/go-mssqldb ("sqlserver", "mssql").
	SQLServer
)

// DialectFor maps a database/sql driver name to its Dialect.
func DialectFor(driverName string) (Dialect, error) {
	switch driverName {
	case "sqlite3":
		return SQLite, nil
	case "mysql":
		return MySQL, nil
	case "sqlserver", "mssql":
		return SQLServer, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDriver, driverName)
	}
}

// String returns the canonical driver name of d.
func (d Dialect) String() string {
	switch d {
	case SQLite:
		return "sqlite3"
	case MySQL:
		return "mysql"
	case SQLServer:
		return "sqlserver"
	default:
		return "dialect(" + strconv.Itoa(int(d)) + ")"
	}
}

// placeholder returns the bind marker of the i-th argument, 1-based.
func (d Dialect) placeholder(i int) string {
	if d == SQLServer {
		return "@p" + strconv.Itoa(i)
	}
	return "?"
}

func (d Dialect) bigint() string { return "BIGINT" }

func (d Dialect) double() string {
	if d == SQLServer {
		return "FLOAT"
	}
	return "DOUBLE PRECISION"
}

// createTable returns DDL creating table(nodeCol PK, valueCol) when missing.
func (d Dialect) createTable(table, nodeCol, valueCol, valueType string) string {
	body := fmt.Sprintf("%s (%s %s NOT NULL PRIMARY KEY, %s %s NOT NULL)",
		table, nodeCol, d.bigint(), valueCol, valueType)
	if d == SQLServer {
		return fmt.Sprintf("IF OBJECT_ID(N'%s', N'U') IS NULL CREATE TABLE %s", table, body)
	}
	return "CREATE TABLE IF NOT EXISTS " + body
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// checkIdentifier rejects names that would need quoting, since they are
// spliced into statements.
func checkIdentifier(name string) error {
	if !identifier.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	return nil
}
