package database

import (
	"fmt"
	"os"
	"strings"

	"github.com/yeremiapane/restaurant-floor/utils"
	"gorm.io/gorm"
)

// ExecuteScript runs a setup SQL file, e.g. a floor layout to seed a new
// restaurant. Statements end with a semicolon at the end of a line; lines
// starting with "--" are comments.
func ExecuteScript(db *gorm.DB, path string) error {
	script, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	statements := SplitStatements(string(script))
	for i, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("statement %d of %s: %w", i+1, path, err)
		}
	}

	utils.InfoLogger.Printf("Executed %d setup statements from %s", len(statements), path)
	return nil
}

func SplitStatements(script string) []string {
	var (
		statements []string
		current    strings.Builder
	)

	flush := func() {
		stmt := strings.TrimSpace(current.String())
		stmt = strings.TrimSuffix(stmt, ";")
		if strings.TrimSpace(stmt) != "" {
			statements = append(statements, strings.TrimSpace(stmt))
		}
		current.Reset()
	}

	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
		if strings.HasSuffix(trimmed, ";") {
			flush()
		}
	}
	flush()
	return statements
}
