package gui

import (
	"bytes"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/gui/synth"
)

const sampleRate = 48000

// sounds plays generated cues for game events.
type sounds struct {
	flap  *audio.Player
	score *audio.Player
	hit   *audio.Player
	music *audio.Player
}

// newSounds builds every cue up front. The audio context can only be
// created once per process.
func newSounds(volume float64) (*sounds, error) {
	ctx := audio.NewContext(sampleRate)

	s := &sounds{
		flap:  ctx.NewPlayerFromBytes(synth.Sweep(sampleRate, 420, 780, 90*time.Millisecond, 0.35)),
		score: ctx.NewPlayerFromBytes(synth.Concat(synth.Tone(sampleRate, 880, 60*time.Millisecond, 0.3), synth.Tone(sampleRate, 1320, 90*time.Millisecond, 0.3))),
		hit:   ctx.NewPlayerFromBytes(synth.Noise(sampleRate, 220*time.Millisecond, 0.5)),
	}

	var notes [][]byte
	for _, f := range []float64{262, 330, 392, 330, 294, 349, 440, 349} {
		notes = append(notes, synth.Tone(sampleRate, f, 180*time.Millisecond, 0.12))
	}
	tune := synth.Concat(notes...)
	music, err := ctx.NewPlayer(audio.NewInfiniteLoop(bytes.NewReader(tune), int64(len(tune))))
	if err != nil {
		return nil, err
	}
	s.music = music

	for _, p := range []*audio.Player{s.flap, s.score, s.hit, s.music} {
		p.SetVolume(volume)
	}

	return s, nil
}

// play reacts to one game event.
func (s *sounds) play(e core.Event) {
	switch e {
	case core.EventFlap:
		restart(s.flap)
	case core.EventScore:
		restart(s.score)
	case core.EventHit:
		restart(s.hit)
	case core.EventMusicStart:
		if err := s.music.Rewind(); err == nil {
			s.music.Play()
		}
	case core.EventMusicStop:
		s.music.Pause()
	}
}

// silence stops every cue, including the music loop.
func (s *sounds) silence() {
	for _, p := range []*audio.Player{s.flap, s.score, s.hit, s.music} {
		p.Pause()
	}
}

func restart(p *audio.Player) {
	if err := p.Rewind(); err != nil {
		return
	}
	p.Play()
}
