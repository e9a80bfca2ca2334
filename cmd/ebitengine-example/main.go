package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/xmcore"
)

/*
note indexes
C  = 0
C# = 1
D  = 2
D# = 3
E  = 4
F  = 5
F# = 6
G  = 7
G# = 8
A  = 9
A# = 10
B  = 11

D#5 = 51
octave := 5-1
(octave × 12) + note_index = 51
*/

// This simple tool plays synthesized waveforms through a single voice
// using Ebitengine audio player.
//
//	1 - sine, forward loop, volume slide down
//	2 - saw, ping-pong loop, panning slide right
//	3 - sine, no loop (one-shot)

func main() {
	bpm := flag.Uint("bpm", 125, "the tick rate for the voice effects")
	note := flag.Float64("note", 48, "the note to play (48 is C-4)")
	flag.Usage = func() {
		fmt.Printf("usage: go run ./cmd/ebitengine-example [flags]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	const sampleRate = 44100

	voice, err := xmcore.NewVoice(xmcore.VoiceConfig{
		SampleRate: sampleRate,
	})
	if err != nil {
		panic(fmt.Errorf("create voice: %w", err))
	}

	sine, err := xmcore.NewWaveform(sineCycle(64), xmcore.WaveformConfig{
		Name:       "sine",
		LoopType:   xmcore.LoopForward,
		LoopLength: 64,
	})
	if err != nil {
		panic(err)
	}
	saw, err := xmcore.NewWaveform8(sawCycle(32), xmcore.WaveformConfig{
		Name:       "saw",
		LoopType:   xmcore.LoopPingPong,
		LoopLength: 32,
		Volume:     0.75,
	})
	if err != nil {
		panic(err)
	}
	oneShot, err := xmcore.NewWaveform(sineBurst(64, 8000), xmcore.WaveformConfig{
		Name: "burst",
	})
	if err != nil {
		panic(err)
	}

	pcm := xmcore.NewPCMReader(voice)
	pcm.SetBPM(*bpm)
	src := &lockedReader{pcm: pcm}

	// Create a sound player using the Ebitengine audio context.
	// You can have multiple players, but only one audio context.
	// See Ebitengine docs to learn more.
	audioContext := audio.NewContext(sampleRate)
	player, err := audioContext.NewPlayer(src)
	if err != nil {
		panic(err)
	}

	g := &game{
		player: player,
		src:    src,
		voice:  voice,
		note:   *note,
		sounds: []sound{
			{w: sine, cmd: xmcore.RowCommand{EffectType: 0x0A, EffectParameter: 0x02}},
			{w: saw, cmd: xmcore.RowCommand{Volume: 0xC0, EffectType: 0x19, EffectParameter: 0x40}},
			{w: oneShot},
		},
	}

	if err := ebiten.RunGame(g); err != nil {
		panic(err)
	}
}

type sound struct {
	w   *xmcore.Waveform
	cmd xmcore.RowCommand
}

// lockedReader serializes the audio thread reads and the game updates.
type lockedReader struct {
	mu  sync.Mutex
	pcm *xmcore.PCMReader
}

func (r *lockedReader) Read(b []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pcm.Read(b)
}

func (r *lockedReader) Seek(offset int64, whence int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pcm.Seek(offset, whence)
}

var _ io.ReadSeeker = (*lockedReader)(nil)

type game struct {
	player *audio.Player
	src    *lockedReader
	voice  *xmcore.Voice
	note   float64
	sounds []sound

	playing string
}

func (g *game) Update() error {
	keys := []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3}
	for i, k := range keys {
		if !inpututil.IsKeyJustPressed(k) {
			continue
		}
		s := g.sounds[i]
		g.player.Pause()
		g.src.mu.Lock()
		g.voice.Play(s.w, g.note)
		g.voice.ApplyRow(s.cmd)
		g.src.mu.Unlock()
		if err := g.player.Rewind(); err != nil {
			return err
		}
		g.player.Play()
		g.playing = s.w.Name()
	}

	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.playing == "" || !g.player.IsPlaying() {
		ebitenutil.DebugPrint(screen, "Press 1, 2 or 3 to play a sound")
	} else {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Playing %s...", g.playing))
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return 640, 480
}

func sineCycle(n int) []int16 {
	data := make([]int16, n)
	for i := range data {
		data[i] = int16(math.Sin(2*math.Pi*float64(i)/float64(n)) * 32000)
	}
	return data
}

func sineBurst(period, length int) []int16 {
	data := make([]int16, length)
	for i := range data {
		decay := 1 - float64(i)/float64(length)
		data[i] = int16(math.Sin(2*math.Pi*float64(i)/float64(period)) * 32000 * decay)
	}
	return data
}

func sawCycle(n int) []int8 {
	data := make([]int8, n)
	for i := range data {
		data[i] = int8(-127 + (254*i)/(n-1))
	}
	return data
}
