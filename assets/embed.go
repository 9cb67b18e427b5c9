// assets/embed.go
//
// Embedded data shipped with the binary:
//   - words/answers.txt, words/allowed.txt: default word lists.
//   - connections.yaml: connections puzzle catalog.
//   - migrations/*.sql: schema for the results database.
package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed words/answers.txt words/allowed.txt connections.yaml migrations/*.sql
var FS embed.FS

// readLines returns the non-empty, non-comment lines of name, upper-cased.
func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToUpper(s))
	}
	return out, sc.Err()
}

func AnswersList() ([]string, error) {
	return readLines("words/answers.txt")
}

func AllowedList() ([]string, error) {
	return readLines("words/allowed.txt")
}

// ConnectionsCatalog returns the raw YAML puzzle catalog.
func ConnectionsCatalog() ([]byte, error) {
	return FS.ReadFile("connections.yaml")
}

// MigrationsDir is the directory inside FS holding the SQL migrations.
const MigrationsDir = "migrations"
