package batch

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompt asks for the list of countries.
const Prompt = "Please enter a list of country names (one country per line, press Enter twice to end input):"

// CollectInput reads one country per line until a blank (or whitespace-only)
// line or EOF. Entries are trimmed; order is preserved.
func CollectInput(r io.Reader) ([]string, error) {
	var queries []string

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			break
		}
		queries = append(queries, line)
	}
	if err := sc.Err(); err != nil {
		return queries, fmt.Errorf("failed to read input: %w", err)
	}
	return queries, nil
}
