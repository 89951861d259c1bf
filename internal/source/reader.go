package source

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadLines loads the URL list from path, one URL per line, in file order.
// Lines are trimmed; blank lines are kept as empty URLs and fail at fetch time.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open url list: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		urls = append(urls, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read url list: %w", err)
	}
	return urls, nil
}

// Repeat returns urls concatenated n times. Positions in the result are distinct,
// so each repetition gets its own output indices. n < 1 is treated as 1.
func Repeat(urls []string, n int) []string {
	if n < 1 {
		n = 1
	}
	out := make([]string, 0, len(urls)*n)
	for i := 0; i < n; i++ {
		out = append(out, urls...)
	}
	return out
}
