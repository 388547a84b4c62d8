package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// readConsole forwards non-empty lines from r to out until r is exhausted.
// out is closed on return.
func readConsole(r io.Reader, out chan<- string) error {
	defer close(out)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		out <- line
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read console: %w", err)
	}
	return nil
}
