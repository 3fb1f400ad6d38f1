package engine

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bamsammich/tally/internal/source"
	"github.com/bamsammich/tally/internal/textio"
)

// reader returns a textio.Reader over s.
func reader(s string) *textio.Reader {
	return textio.NewReader(strings.NewReader(s))
}

// writeFiles creates each name -> content pair under a fresh temp dir and
// returns the paths in the order given by names.
func writeFiles(t *testing.T, names []string, content map[string]string) []string {
	t.Helper()

	dir := t.TempDir()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		if data, ok := content[name]; ok {
			require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
		}
		paths = append(paths, path)
	}
	return paths
}

// runBatch runs cfg with in-memory writers and stdin.
func runBatch(t *testing.T, cfg Config, stdin string) (Result, string, string) {
	t.Helper()

	var out, errOut bytes.Buffer
	cfg.Out = &out
	cfg.ErrOut = &errOut
	if cfg.Resolver == nil {
		cfg.Resolver = source.NewResolver(source.Options{Stdin: strings.NewReader(stdin)})
	}
	res := Run(context.Background(), cfg)
	return res, out.String(), errOut.String()
}
