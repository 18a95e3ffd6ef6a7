package util

import (
	"encoding/json"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

func RecreateOutputDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return errors.Wrap(err, "could not clear output dir")
	}
	return errors.Wrap(os.MkdirAll(dir, 0777), "could not create output dir")
}

func EnsureDir(dir string) error {
	return errors.Wrap(os.MkdirAll(dir, 0777), "could not create dir")
}

func GatherAllMidiPaths(path string, maxNum int) ([]string, error) {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			lower := strings.ToLower(s)
			if strings.HasSuffix(lower, ".mid") || strings.HasSuffix(lower, ".midi") {
				if maxNum == 0 || len(res) < maxNum {
					res = append(res, s)
				}
			}
		}
		return nil
	}
	if err := filepath.WalkDir(path, walk); err != nil {
		return nil, errors.Wrapf(err, "error walking %v", path)
	}
	return res, nil
}

// GetKeys returns the map's keys in ascending order.
func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func WriteJSON(filename string, data any) error {
	buf, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not encode json")
	}
	return errors.Wrapf(os.WriteFile(filename, buf, 0666), "write failed for file: %v", filename)
}

func ReadJSON[A any](path string) (A, error) {
	var data A
	buf, err := os.ReadFile(path)
	if err != nil {
		return data, errors.Wrapf(err, "could not read %v", path)
	}
	if err := json.Unmarshal(buf, &data); err != nil {
		return data, errors.Wrapf(err, "could not decode %v", path)
	}
	return data, nil
}

func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
