package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/relink/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Verifier = (*Verifier)(nil)

// Verifier checks that expected files exist below a root directory.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// MissingOutputs returns the slash-separated outputs that are not regular files below root.
func (v *Verifier) MissingOutputs(root string, outputs []string) ([]string, error) {
	var missing []string
	for _, output := range outputs {
		path := filepath.Join(root, filepath.FromSlash(output))
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				missing = append(missing, output)
				continue
			}
			return nil, zerr.With(zerr.Wrap(err, "failed to stat output"), "path", path)
		}
		if !info.Mode().IsRegular() {
			missing = append(missing, output)
		}
	}
	return missing, nil
}
