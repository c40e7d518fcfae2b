package main

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/go-faster/jx"

	"w4kit/cart"
	"w4kit/cart/luacart"
	"w4kit/cart/probe"
	"w4kit/emu"
	"w4kit/emu/log"
	"w4kit/hw/hwdefs"
	"w4kit/hw/input"
	"w4kit/sfx"
)

// A script drives the gamepads during a replay. Its JSON form is:
//
//	{
//	  "frames": 120,
//	  "input": [
//	    {"frame": 10, "pad": 1, "buttons": "x|left"},
//	    {"frame": 20, "pad": 1, "buttons": "none"}
//	  ]
//	}
//
// Each input entry sets the state of a gamepad from its frame on, until the
// next entry for the same gamepad.
type script struct {
	Frames int
	Input  []scriptInput
}

type scriptInput struct {
	Frame   int
	Pad     int // 1 to 4
	Buttons input.Button
}

func parseScript(data []byte) (*script, error) {
	var s script
	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "frames":
			n, err := d.Int()
			if err != nil {
				return err
			}
			if n < 0 {
				return fmt.Errorf("invalid frame count %d", n)
			}
			s.Frames = n
		case "input":
			return d.Arr(func(d *jx.Decoder) error {
				in, err := parseScriptInput(d)
				if err != nil {
					return fmt.Errorf("input %d: %w", len(s.Input), err)
				}
				s.Input = append(s.Input, in)
				return nil
			})
		default:
			return fmt.Errorf("unknown key %q", key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}

	slices.SortStableFunc(s.Input, func(a, b scriptInput) int { return a.Frame - b.Frame })
	return &s, nil
}

func parseScriptInput(d *jx.Decoder) (scriptInput, error) {
	in := scriptInput{Pad: 1}
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "frame":
			in.Frame, err = d.Int()
			if err == nil && in.Frame < 0 {
				err = fmt.Errorf("invalid frame %d", in.Frame)
			}
		case "pad":
			in.Pad, err = d.Int()
			if err == nil && (in.Pad < 1 || in.Pad > hwdefs.NumGamepads) {
				err = fmt.Errorf("invalid gamepad %d (want 1 to %d)", in.Pad, hwdefs.NumGamepads)
			}
		case "buttons":
			var s string
			if s, err = d.Str(); err == nil {
				err = in.Buttons.UnmarshalText([]byte(s))
			}
		default:
			err = fmt.Errorf("unknown key %q", key)
		}
		return err
	})
	return in, err
}

// replayResult is what a cartridge did during a replay.
type replayResult struct {
	Frames    uint64
	Events    []probe.Record // only with the probe cartridge
	Tones     []emu.ToneEvent
	Traces    []string
	DrawCalls []emu.DrawCall // of the last frame
	Samples   []int16
}

// runReplay runs the cartridge for the given number of frames on a headless
// machine, feeding the gamepads from the script.
func runReplay(cfg emu.Config, start cart.StartFunc, s *script, frames int) (*replayResult, error) {
	m, err := emu.NewMachine(cfg)
	if err != nil {
		return nil, err
	}
	log.AddContext(m)
	defer log.RemoveContext(m)

	rt := cart.New(m, start)
	if err := rt.Start(); err != nil {
		return nil, err
	}
	if c, ok := rt.App().(interface{ Close() }); ok {
		defer c.Close()
	}

	var res replayResult
	next := 0
	for f := range frames {
		for next < len(s.Input) && s.Input[next].Frame <= f {
			in := s.Input[next]
			m.SetGamepad(in.Pad-1, uint8(in.Buttons))
			next++
		}
		m.RunFrame(rt)
		res.Samples = append(res.Samples, m.TakeSamples()...)
	}

	if c, ok := rt.App().(interface{ Err() error }); ok && c.Err() != nil {
		return nil, c.Err()
	}

	res.Frames = m.Frame()
	res.Tones = m.Tones()
	res.Traces = m.Traces()
	res.DrawCalls = m.DrawCalls()
	if p, ok := rt.App().(*probe.Probe); ok {
		res.Events = p.Records
	}
	return &res, nil
}

func replayMain(out *printer, args Replay, cfg emu.Config) error {
	var start cart.StartFunc = probe.Start
	if args.Cart != "" {
		var err error
		if start, err = luacart.LoadFile(args.Cart); err != nil {
			return err
		}
	}

	s := &script{}
	if args.Script != "" {
		data, err := os.ReadFile(args.Script)
		if err != nil {
			return err
		}
		if s, err = parseScript(data); err != nil {
			return fmt.Errorf("%s: %w", args.Script, err)
		}
	}

	frames := args.Frames
	if frames == 0 {
		frames = s.Frames
	}
	if frames == 0 {
		frames = cfg.General.Frames
	}

	if args.WAV != "" && cfg.Audio.DisableAudio {
		return errors.New("cannot write audio output, audio is disabled in the configuration")
	}

	res, err := runReplay(cfg, start, s, frames)
	if err != nil {
		return err
	}
	out.replay(res)

	if args.WAV != "" {
		f, err := os.Create(args.WAV)
		if err != nil {
			return err
		}
		if err := sfx.WriteWAV(f, res.Samples, cfg.Audio.SampleRate); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return nil
}
