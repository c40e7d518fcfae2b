package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"w4kit/emu"
	"w4kit/emu/log"
	"w4kit/hw/audio"
	"w4kit/hw/gfx"
	"w4kit/hw/hwdefs"
	"w4kit/hw/hwio"
	"w4kit/sfx"
	"w4kit/sfx/sdlplay"
)

func drawColorsMain(out *printer, args DrawColors) error {
	reg, err := strconv.ParseUint(args.Reg, 0, 16)
	if err != nil {
		return fmt.Errorf("invalid register value %q", args.Reg)
	}
	sel, err := parseSelections(args.Selections)
	if err != nil {
		return err
	}

	enc := gfx.EncodeDrawColors(uint16(reg), sel)
	idx, err := gfx.DecodeDrawColors(enc)
	if err != nil {
		return err
	}
	out.drawColors(enc, idx)
	return nil
}

func parseSelections(args []string) ([hwdefs.NumDrawColors]gfx.Selection, error) {
	var sel [hwdefs.NumDrawColors]gfx.Selection
	if len(args) > len(sel) {
		return sel, fmt.Errorf("too many selections (%d), at most %d draw colors", len(args), len(sel))
	}
	for i, s := range args {
		var err error
		if sel[i], err = gfx.ParseSelection(s); err != nil {
			return sel, err
		}
	}
	return sel, nil
}

// effect converts the tone flags into a sound effect.
func (args Tone) effect() (sfx.Effect, error) {
	eff := sfx.Effect{
		Freq:    args.Freq,
		Volume:  args.Volume,
		Channel: args.Channel,
		Duty:    args.Duty,
		Pan:     args.Pan,
	}

	durs := [...]*uint8{&eff.Attack, &eff.Decay, &eff.Sustain, &eff.Release}
	for i, d := range [...]int{args.Attack, args.Decay, args.Sustain, args.Release} {
		if args.Millis {
			v, err := audio.Millis(d)
			if err != nil {
				return eff, err
			}
			*durs[i] = uint8(v)
			continue
		}
		if err := hwio.CheckRange("duration (frames)", d, 0, 255); err != nil {
			return eff, err
		}
		*durs[i] = uint8(d)
	}
	return eff, nil
}

func sampleRate(rate int, cfg emu.Config) int {
	if rate == 0 {
		return cfg.Audio.SampleRate
	}
	return rate
}

func toneMain(ctx context.Context, out *printer, args Tone, cfg emu.Config) error {
	eff, err := args.effect()
	if err != nil {
		return err
	}
	t, err := eff.Tone()
	if err != nil {
		return err
	}
	out.tone(t)

	rate := sampleRate(args.Rate, cfg)
	if args.WAV != "" {
		if err := sfx.RenderFile(args.WAV, t, rate); err != nil {
			return err
		}
		log.ModSfx.InfoZ("tone rendered").String("path", args.WAV).End()
	}
	if args.Play {
		samples, err := sfx.Render(t, rate)
		if err != nil {
			return err
		}
		return sdlplay.Play(ctx, samples, rate)
	}
	return nil
}

func loadBank(path string) (*sfx.Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := sfx.DecodeBank(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

func sfxRenderMain(ctx context.Context, out *printer, args SfxRender, cfg emu.Config) error {
	rate := sampleRate(args.Rate, cfg)
	render := func() error {
		b, err := loadBank(args.Bank)
		if err != nil {
			return err
		}
		paths, err := sfx.RenderBank(ctx, b, args.Out, rate)
		if err != nil {
			return err
		}
		out.rendered(paths)
		return out.flush()
	}

	if !args.Watch {
		return render()
	}

	err := sfx.Watch(ctx, args.Bank, render)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func sfxPlayMain(ctx context.Context, args SfxPlay, cfg emu.Config) error {
	b, err := loadBank(args.Bank)
	if err != nil {
		return err
	}
	t, err := b.Tone(args.Name)
	if err != nil {
		return err
	}

	rate := sampleRate(args.Rate, cfg)
	samples, err := sfx.Render(t, rate)
	if err != nil {
		return err
	}
	return sdlplay.Play(ctx, samples, rate)
}
