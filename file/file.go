package file

import (
	"fmt"
	"path/filepath"
	"strings"
)

type FileNumToMidiPath = map[uint32]string

func CreateFileNumMap(paths []string) FileNumToMidiPath {
	res := make(FileNumToMidiPath)
	for i, v := range paths {
		res[uint32(i)] = v
	}
	return res
}

// OutputName names the engraved score for a midi file, e.g. 007_prelude.json.
func OutputName(num uint32, midiPath string) string {
	base := filepath.Base(midiPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%03d_%v.json", num, base)
}
