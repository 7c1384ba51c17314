package platform

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	"github.com/ytget/merge-replays/internal/model"
)

// DiscoverPairs lists dir (non-recursive) and returns every container/audio
// pair whose filenames share a stem. Extensions and stems match
// case-sensitively. Pairs are sorted by stem so repeated calls on an
// unchanged directory return the same order.
func DiscoverPairs(fs afero.Fs, dir, containerExt, audioExt string) ([]model.FilePair, error) {
	if err := RequireDirectory(fs, dir); err != nil {
		return nil, err
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "read directory %s", dir), ErrDirectoryNotFound)
	}

	containers := stemIndex(dir, entries, containerExt)
	audios := stemIndex(dir, entries, audioExt)

	stems := make([]string, 0, len(containers))
	for stem := range containers {
		if _, ok := audios[stem]; ok {
			stems = append(stems, stem)
		}
	}
	sort.Strings(stems)

	pairs := make([]model.FilePair, 0, len(stems))
	for _, stem := range stems {
		pairs = append(pairs, model.FilePair{
			ContainerPath: containers[stem],
			AudioPath:     audios[stem],
		})
	}
	return pairs, nil
}

// stemIndex maps stem to full path for regular files ending in ext
func stemIndex(dir string, entries []os.FileInfo, ext string) map[string]string {
	index := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) != ext {
			continue
		}
		stem := strings.TrimSuffix(name, ext)
		if stem == "" {
			continue
		}
		index[stem] = filepath.Join(dir, name)
	}
	return index
}
