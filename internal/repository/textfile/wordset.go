// Package textfile loads word sets from newline-separated text files, the
// default backing format for the dictionary and the breach blacklist.
package textfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// WordSetRepository reads one word per line, trims whitespace and lowers
// case. A missing file is tolerated and yields an empty set.
type WordSetRepository struct {
	path string
}

func NewWordSetRepository(path string) *WordSetRepository {
	return &WordSetRepository{path: path}
}

func (r *WordSetRepository) Load(_ context.Context) (map[string]struct{}, error) {
	set := make(map[string]struct{})

	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return set, nil
		}
		return set, fmt.Errorf("failed to open %s: %w", r.path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word != "" {
			set[word] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return set, fmt.Errorf("failed to read %s: %w", r.path, err)
	}
	return set, nil
}
