package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsphweid/engraver/constants"
	"github.com/jsphweid/engraver/live"
	"github.com/jsphweid/engraver/logger"
	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/preview"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

var portFlag int

func init() {
	listenCmd.Flags().IntVar(&portFlag, "port", 0, "midi input port number")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Engraves a live midi input",
	Long:  `Listens to a midi input and prints a fresh preview of the take whenever playing pauses`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listen(portFlag)
	},
}

func listen(port int) error {
	log := logger.GetProjectLogger()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	bpm := bpmFlag
	if bpm <= 0 {
		bpm = constants.DefaultBpm
	}

	defer midi.CloseDriver()
	in, err := midi.InPort(port)
	if err != nil {
		return errors.Wrapf(err, "could not open midi input %v", port)
	}
	log.Infof("Listening on %v at %v bpm", in, bpm)

	session := live.NewSession(bpm, cfg, constants.ListenQuietPeriodMs*time.Millisecond, func(measures []model.Measure) {
		fmt.Print("\033[H\033[2J")
		fmt.Print(preview.Render(measures))
	})

	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			session.NoteOn(key, vel, timestampms)
		case msg.GetNoteEnd(&ch, &key):
			session.NoteOff(key, timestampms)
		}
	})
	if err != nil {
		return errors.Wrap(err, "could not listen")
	}
	defer stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Infof("Stopped after %v notes", len(session.Events()))
	return nil
}
