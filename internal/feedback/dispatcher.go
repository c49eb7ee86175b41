package feedback

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"lexiquiz/internal/quiz"
	"lexiquiz/pkg/realtime"
)

// DefaultDelay separates the failure tone from the pronunciation of the wrong word.
const DefaultDelay = 400 * time.Millisecond

// Dispatcher sequences the cues for each answer. Only the cues of the latest
// answer may play; anything older is canceled.
type Dispatcher struct {
	log    *zap.SugaredLogger
	player Player
	delay  time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	pending *realtime.Scheduled
}

// NewDispatcher creates a dispatcher. A non-positive delay selects DefaultDelay.
func NewDispatcher(player Player, delay time.Duration, log *zap.SugaredLogger) *Dispatcher {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Dispatcher{log: log, player: player, delay: delay}
}

// Dispatch plays the cues for o: chime then pronunciation when correct,
// failure tone then the delayed pronunciation of the clicked word otherwise.
func (d *Dispatcher) Dispatch(o quiz.Outcome) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel

	switch o.Kind {
	case quiz.OutcomeCorrect:
		go func() {
			d.report("chime", o, d.player.Chime(ctx))
			if ctx.Err() != nil {
				return
			}
			d.report("pronounce", o, d.player.Pronounce(ctx, o.Language, o.EntryID))
		}()
	case quiz.OutcomeIncorrect:
		go func() {
			d.report("tone", o, d.player.Tone(ctx))
		}()
		d.pending = realtime.After(d.delay, func() {
			d.report("pronounce", o, d.player.Pronounce(ctx, o.Language, o.EntryID))
		})
	default:
		d.log.Warnw("unknown outcome", "kind", o.Kind)
	}
}

// Cancel stops whatever the last dispatch still has to play.
func (d *Dispatcher) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

func (d *Dispatcher) stopLocked() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.pending.Cancel()
	d.pending = nil
}

func (d *Dispatcher) report(cue string, o quiz.Outcome, err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	d.log.Warnw("cue playback failed",
		"cue", cue,
		"lang", o.Language,
		"entry", o.EntryID,
		"error", err,
	)
}
