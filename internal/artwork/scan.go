package artwork

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	ioutils "github.com/handiism/albumart-downloader/internal/io"
	"github.com/handiism/albumart-downloader/internal/model"
)

// ScanExisting reads the identifier of every regular file in dir.
//
// Files that cannot be read or carry no identifier are skipped. The returned
// set is always usable; the error, if not nil, is a *multierror.Error listing
// every skipped file. A missing dir yields an empty set and no error.
func (t *Tagger) ScanExisting(dir string) (model.IdentifierSet, error) {
	ids := model.NewIdentifierSet()

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return ids, nil
		}
		return ids, err
	}

	var result *multierror.Error
	for _, entry := range entries {
		if !entry.Type().IsRegular() || ioutils.IsPartial(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		id, err := t.ReadIdentifier(path)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", entry.Name(), err))
			continue
		}
		ids.Add(id)
	}

	return ids, result.ErrorOrNil()
}
