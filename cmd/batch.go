package cmd

import (
	"strconv"

	"github.com/jsphweid/engraver/batch"
	"github.com/jsphweid/engraver/constants"
	"github.com/jsphweid/engraver/file"
	"github.com/jsphweid/engraver/logger"
	"github.com/jsphweid/engraver/util"
	"github.com/spf13/cobra"
)

var cleanFlag bool

func init() {
	batchCmd.Flags().BoolVar(&cleanFlag, "clean", false, "remove previous output before engraving")
	rootCmd.AddCommand(batchCmd)
}

var batchCmd = &cobra.Command{
	Use:   "batch <dir> [max]",
	Short: "Engraves every midi file under a directory",
	Long:  `Engraves every midi file under a directory, writing one JSON score per file to the output directory`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var maxNum int
		if len(args) == 2 {
			arg, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			maxNum = arg
		}
		return runBatch(args[0], maxNum)
	},
}

func runBatch(dir string, maxNum int) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	outDir := constants.GetOutDir()
	if cleanFlag {
		err = util.RecreateOutputDir(outDir)
	} else {
		err = util.EnsureDir(outDir)
	}
	if err != nil {
		return err
	}

	paths, err := util.GatherAllMidiPaths(dir, maxNum)
	if err != nil {
		return err
	}
	fileNumMap := file.CreateFileNumMap(paths)
	report := batch.ProcessAllMidiFiles(fileNumMap, outDir, bpmFlag, cfg)
	logger.GetProjectLogger().Infof("Engraved %v files, skipped %v", report.Processed, report.Skipped)
	printSummary(report.Summary)
	return nil
}
