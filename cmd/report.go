package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/jsphweid/engraver/batch"
	"github.com/jsphweid/engraver/constants"
	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Creates a report",
	Long:  `Totals the summaries of every score in the output directory`,
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, numFiles, err := summarizeDir(constants.GetOutDir())
		if err != nil {
			return err
		}
		fmt.Printf("scores: %v\n", numFiles)
		printSummary(summary)
		return nil
	},
}

var scoreFilePattern = regexp.MustCompile(`^\d\d\d_.*\.json$`)

func summarizeDir(dir string) (model.Summary, int, error) {
	total := model.Summary{Flags: make(map[string]int)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return total, 0, errors.Wrap(err, "could not read output dir")
	}

	var numFiles int
	for _, entry := range entries {
		if entry.IsDir() || !scoreFilePattern.MatchString(entry.Name()) {
			continue
		}
		res, err := util.ReadJSON[model.EngraveResponse](filepath.Join(dir, entry.Name()))
		if err != nil {
			return total, numFiles, err
		}
		numFiles++
		batch.Merge(&total, res.Summary)
	}
	return total, numFiles, nil
}

func printSummary(s model.Summary) {
	fmt.Printf("measures: %v\n", s.NumMeasures)
	fmt.Printf("notes: %v\n", s.NumNotes)
	fmt.Printf("rests: %v\n", s.NumRests)
	fmt.Printf("tied: %v\n", s.NumTied)
	fmt.Printf("slurs: %v\n", s.NumSlurs)
	fmt.Printf("beams: %v\n", s.NumBeams)
	fmt.Printf("uncertain: %v\n", s.NumUncertain)
	fmt.Printf("voice 2: %v\n", s.NumVoice2)
	for _, k := range util.GetKeys(s.Flags) {
		fmt.Printf("flag %v: %v\n", k, s.Flags[k])
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
