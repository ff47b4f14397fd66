// Package extract unpacks the raw entries of a GEDCOM X file onto disk.
package extract

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/noders-team/go-gedcomx/pkg/fileformat"
)

func generateRandomID() (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 15)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	for i := range b {
		b[i] = charset[b[i]%byte(len(charset))]
	}
	return string(b), nil
}

// Extract unpacks the GEDCOM X file at src into a new, randomly named
// directory below output (os.TempDir() when output is nil) and returns the
// directory path.
func Extract(src string, output *string) (string, error) {
	f, err := fileformat.OpenFile(src)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Err(err).Msgf("failed to close %s", src)
		}
	}()

	var out string
	if output == nil {
		out = os.TempDir()
	} else {
		out = *output
	}

	randomID, err := generateRandomID()
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	out = filepath.Join(out, randomID)

	if err := ExtractTo(f, out); err != nil {
		return "", err
	}
	return out, nil
}

// ExtractTo writes every entry of f, the manifest included, below dir. Entry
// names that would resolve outside dir are rejected.
func ExtractTo(f *fileformat.File, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory '%s': %w", dir, err)
	}
	root := filepath.Clean(dir) + string(os.PathSeparator)

	for _, e := range f.Entries() {
		path := filepath.Join(dir, filepath.FromSlash(e.Name()))
		if !strings.HasPrefix(path, root) {
			return fmt.Errorf("illegal file path: %s", e.Name())
		}
		if err := extractEntry(e, path); err != nil {
			return err
		}
		log.Debug().Msgf("extracted %s", e.Name())
	}
	return nil
}

func extractEntry(e *fileformat.Entry, path string) error {
	if e.File().FileInfo().IsDir() {
		return os.MkdirAll(path, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	rc, err := e.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	outFile, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(outFile, rc); err != nil {
		outFile.Close()
		return fmt.Errorf("failed to extract '%s': %w", e.Name(), err)
	}
	return outFile.Close()
}
