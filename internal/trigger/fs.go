package trigger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FSPageSource serves page texts from a local directory tree: bucket is the
// root directory, the event name is the claim folder, and each *.txt file is
// one page, ordered by file name. It stands in for the blob-storage backed
// source in local and test deployments.
type FSPageSource struct {
	Root string
}

func (s FSPageSource) PageTexts(_ context.Context, bucket, folder string) ([]string, error) {
	dir := filepath.Join(s.Root, bucket, folder)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read claim folder %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	texts := make([]string, 0, len(names))
	for _, name := range names {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read page %s: %w", name, err)
		}
		texts = append(texts, string(b))
	}
	return texts, nil
}
