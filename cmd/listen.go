package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/jsphweid/pianocoach/chord"
	"github.com/jsphweid/pianocoach/constants"
	"github.com/jsphweid/pianocoach/engine"
	"github.com/jsphweid/pianocoach/logging"
	"github.com/jsphweid/pianocoach/model"
	"github.com/jsphweid/pianocoach/store"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
	"go.uber.org/zap"
)

var quietPeriod time.Duration

func init() {
	listenCmd.Flags().DurationVar(&quietPeriod, "quiet", 2*time.Second, "pause in playing before suggestions are refreshed")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen [port]",
	Short: "Records a session from a MIDI keyboard",
	Long: `Records every note from a MIDI input port into a new session. Whenever you
pause, fresh suggestions are printed and saved. Ctrl-C ends the session.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		portNum := 0
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("port must be a number: %w", err)
			}
			portNum = n
		}

		log := logging.New(constants.GetLogFile(), constants.IsProd())
		defer log.Sync()

		st, err := openStore(storeKind, log)
		if err != nil {
			return err
		}
		return listen(commandContext(cmd), portNum, st, log)
	},
}

// recorder turns live key events into stored notes. Analysis runs on the
// debouncer's goroutine, so state shared with the MIDI callback is guarded.
type recorder struct {
	sessionId string
	store     store.Store
	engine    *engine.Engine
	log       *zap.Logger
	now       func() time.Time

	mu       sync.Mutex
	sounding map[uint8]bool
}

func (r *recorder) onKey(ctx context.Context, key, velocity uint8, isOn bool) {
	n := model.NoteEvent{
		MidiNote:  int(key),
		Velocity:  int(velocity),
		Timestamp: r.now().UnixMilli(),
		IsNoteOn:  isOn,
	}
	if err := store.SaveNote(ctx, r.store, r.sessionId, n, r.now()); err != nil {
		r.log.Error("could not save note", zap.String("session_id", r.sessionId), zap.Error(err))
	}

	r.mu.Lock()
	if isOn {
		r.sounding[key] = true
	} else {
		delete(r.sounding, key)
	}
	keys := make([]uint8, 0, len(r.sounding))
	for k := range r.sounding {
		keys = append(keys, k)
	}
	r.mu.Unlock()

	if len(keys) > 1 {
		r.log.Debug("sounding", zap.String("chord", chord.CreateChordKey(keys)))
	}
}

func (r *recorder) refresh(ctx context.Context) []string {
	s, err := r.store.GetSession(ctx, r.sessionId)
	if err != nil {
		r.log.Error("could not load session", zap.String("session_id", r.sessionId), zap.Error(err))
		return nil
	}
	suggestions := r.engine.GenerateSuggestions(s.Notes)
	if err := store.SaveSuggestions(ctx, r.store, r.sessionId, suggestions, r.now()); err != nil {
		r.log.Error("could not save suggestions", zap.String("session_id", r.sessionId), zap.Error(err))
	}
	return suggestions
}

func listen(ctx context.Context, portNum int, st store.Store, log *zap.Logger) error {
	defer midi.CloseDriver()
	in, err := midi.InPort(portNum)
	if err != nil {
		return fmt.Errorf("can't find MIDI input %v: %w", portNum, err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := &recorder{
		sessionId: uuid.New().String(),
		store:     st,
		engine:    engine.New(),
		log:       log,
		now:       time.Now,
		sounding:  make(map[uint8]bool),
	}
	if err := store.StartSession(ctx, st, r.sessionId, constants.DefaultDevice, r.now()); err != nil {
		return err
	}
	log.Info("recording", zap.String("session_id", r.sessionId), zap.String("port", in.String()))

	debounced := debounce.New(quietPeriod)
	stopListening, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			r.onKey(ctx, key, vel, true)
		case msg.GetNoteEnd(&ch, &key):
			r.onKey(ctx, key, 0, false)
		default:
			return
		}
		debounced(func() {
			for i, s := range r.refresh(ctx) {
				fmt.Printf("%d. %v\n", i+1, s)
			}
			fmt.Println()
		})
	})
	if err != nil {
		return fmt.Errorf("could not listen to %v: %w", in.String(), err)
	}

	<-ctx.Done()
	stopListening()

	// the signal context is done; finish with a fresh one
	if err := store.EndSession(context.Background(), st, r.sessionId, r.now()); err != nil {
		return err
	}
	log.Info("session ended", zap.String("session_id", r.sessionId))
	return nil
}
