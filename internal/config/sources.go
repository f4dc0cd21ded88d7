package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadSourceList reads a newline-delimited URL list, skipping blank
// lines and lines starting with "#". A missing file yields an empty
// list, not an error.
func ReadSourceList(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator config
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open source list %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read source list %s: %w", path, err)
	}
	return urls, nil
}
