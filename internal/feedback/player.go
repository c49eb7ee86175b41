// Package feedback turns answer outcomes into audio cues for the browser.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"lexiquiz/internal/catalog"
)

// ErrAssetMissing is returned when a cue refers to a file the asset directory lacks.
var ErrAssetMissing = errors.New("audio asset missing")

// Sound modes accepted by NewPlayer.
const (
	ModeFile  = "file"
	ModeSynth = "synth"
)

const (
	CueSound = "sound"
	CueTone  = "tone"
)

// Cue is one playback instruction sent to the browser.
type Cue struct {
	Kind       string  `json:"kind"`
	Src        string  `json:"src,omitempty"`
	Waveform   string  `json:"waveform,omitempty"`
	Frequency  float64 `json:"frequency,omitempty"`
	DurationMs int     `json:"duration_ms,omitempty"`
}

// Sink receives cues as they are played.
type Sink func(Cue)

// Player plays the three kinds of cue. Each call returns once playback has been handed off.
type Player interface {
	Chime(ctx context.Context) error
	Tone(ctx context.Context) error
	Pronounce(ctx context.Context, lang catalog.Language, id string) error
}

// NewPlayer returns the player for mode.
func NewPlayer(mode string, assets fs.FS, sink Sink) (Player, error) {
	switch mode {
	case ModeFile, "":
		return NewAssetPlayer(assets, sink), nil
	case ModeSynth:
		return NewSynthPlayer(NewAssetPlayer(assets, sink), sink), nil
	default:
		return nil, fmt.Errorf("unknown sound mode %q", mode)
	}
}

// AssetPlayer plays recorded files from the asset directory.
type AssetPlayer struct {
	assets fs.FS
	sink   Sink
}

// NewAssetPlayer creates a player emitting to sink. A nil assets skips the existence check.
func NewAssetPlayer(assets fs.FS, sink Sink) *AssetPlayer {
	return &AssetPlayer{assets: assets, sink: sink}
}

func (p *AssetPlayer) Chime(ctx context.Context) error {
	return p.play(ctx, catalog.ChimeSound)
}

func (p *AssetPlayer) Tone(ctx context.Context) error {
	return p.play(ctx, catalog.FailureSound)
}

func (p *AssetPlayer) Pronounce(ctx context.Context, lang catalog.Language, id string) error {
	return p.play(ctx, lang.AudioPath(id))
}

func (p *AssetPlayer) play(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.assets != nil {
		if _, err := fs.Stat(p.assets, path); err != nil {
			return fmt.Errorf("%w: %s", ErrAssetMissing, path)
		}
	}
	p.sink(Cue{Kind: CueSound, Src: "/" + path})
	return nil
}

// Synthesized failure tone: a short low square wave.
const (
	toneWaveform   = "square"
	toneFrequency  = 220
	toneDurationMs = 250
)

// SynthPlayer synthesizes the failure tone in the browser and plays files for the rest.
type SynthPlayer struct {
	*AssetPlayer
	sink Sink
}

func NewSynthPlayer(files *AssetPlayer, sink Sink) *SynthPlayer {
	return &SynthPlayer{AssetPlayer: files, sink: sink}
}

func (p *SynthPlayer) Tone(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.sink(Cue{
		Kind:       CueTone,
		Waveform:   toneWaveform,
		Frequency:  toneFrequency,
		DurationMs: toneDurationMs,
	})
	return nil
}
