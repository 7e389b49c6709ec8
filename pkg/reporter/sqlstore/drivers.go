package sqlstore

import (
	"strconv"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Driver maps a configured dialect name to its registered database/sql driver.
func Driver(dialect string) string {
	switch strings.ToLower(dialect) {
	case "mysql":
		return "mysql"
	case "postgres", "postgresql":
		return "postgres"
	case "sqlite", "sqlite3":
		return "sqlite3"
	default:
		return dialect
	}
}

func placeholders(driver string, n int) string {
	marks := make([]string, n)
	for i := range marks {
		if driver == "postgres" {
			marks[i] = "$" + strconv.Itoa(i+1)
		} else {
			marks[i] = "?"
		}
	}
	return strings.Join(marks, ", ")
}
