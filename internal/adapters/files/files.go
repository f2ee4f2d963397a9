// Package files finds and writes the stage artifacts under the data directory.
//
// Every stage reads the newest artifact of the previous one and writes a new
// timestamped artifact, e.g. raw/raw_social_data_20250101_120000.json.
package files

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	perr "artisantrend/internal/platform/errors"
	ptime "artisantrend/internal/platform/time"
)

// Layout names the stage directories and artifact prefixes
const (
	RawDir         = "raw"
	CleanedDir     = "cleaned"
	ProcessedDir   = "processed"
	PredictionsDir = "predictions"
	PowerBIDir     = "powerbi"
	CacheDir       = "cache"

	RawPrefix         = "raw_social_data_"
	CleanedPrefix     = "cleaned_social_data_"
	AnalysisPrefix    = "data_analysis_"
	PredictionsPrefix = "trend_predictions_"
	PowerBILatest     = "powerbi_trends_latest.csv"
)

// Order picks how "newest" is decided
type Order uint8

const (
	// ByModTime picks the most recently modified file
	ByModTime Order = iota
	// ByName picks the lexicographically greatest name; stamps sort by time
	ByName
)

// Newest returns the newest file in dir named prefix*ext
func Newest(dir, prefix, ext string, by Order) (string, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", perr.NotFoundf("no %s*%s files: %s does not exist", prefix, ext, dir)
		}
		return "", perr.IOf(err, "read dir %s", dir)
	}

	type cand struct {
		name string
		mod  time.Time
	}
	var cs []cand
	for _, de := range des {
		name := de.Name()
		if de.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ext) {
			continue
		}
		c := cand{name: name}
		if by == ByModTime {
			fi, err := de.Info()
			if err != nil {
				continue
			}
			c.mod = fi.ModTime()
		}
		cs = append(cs, c)
	}
	if len(cs) == 0 {
		return "", perr.NotFoundf("no %s*%s files in %s", prefix, ext, dir)
	}

	sort.Slice(cs, func(i, j int) bool {
		if by == ByModTime && !cs[i].mod.Equal(cs[j].mod) {
			return cs[i].mod.After(cs[j].mod)
		}
		return cs[i].name > cs[j].name
	})
	return filepath.Join(dir, cs[0].name), nil
}

// Stamped builds dir/prefix<stamp>ext for t
func Stamped(dir, prefix, ext string, t time.Time) string {
	return filepath.Join(dir, prefix+ptime.Stamp(t)+ext)
}

// Open opens path, mapping a missing file to NotFound
func Open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, perr.NotFoundf("%s not found", path)
		}
		return nil, perr.IOf(err, "open %s", path)
	}
	return f, nil
}

// ReadJSON decodes path into v
func ReadJSON(path string, v any) error {
	f, err := Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(v); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "decode %s", path)
	}
	return nil
}

// WriteJSON writes v indented, creating parent dirs; the write is atomic
func WriteJSON(path string, v any) error {
	return write(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		return enc.Encode(v)
	})
}

// WriteCSV writes a header and rows
func WriteCSV(path string, header []string, rows [][]string) error {
	return write(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(header); err != nil {
			return err
		}
		if err := cw.WriteAll(rows); err != nil {
			return err
		}
		return cw.Error()
	})
}

func write(path string, fill func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return perr.IOf(err, "mkdir %s", filepath.Dir(path))
	}
	tmp := path + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return perr.IOf(err, "create %s", tmp)
	}
	if err := fill(f); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return perr.IOf(err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return perr.IOf(err, "close %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		return perr.IOf(err, "rename %s", path)
	}
	return nil
}
