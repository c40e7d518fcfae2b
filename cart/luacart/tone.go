package luacart

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"w4kit/hw/audio"
	"w4kit/sfx"
)

// toneFromTable builds a tone from a Lua table having the same fields as a
// sound bank effect:
//
//	tone{freq={262, 523}, sustain=10, release=5, volume=50, channel="pulse1"}
//
// freq and volume accept a number or an array of 2 numbers.
func toneFromTable(tbl *lua.LTable) (audio.Tone, error) {
	var eff sfx.Effect

	freqs, err := numbers(tbl, "freq", 0xffff)
	if err != nil {
		return audio.Tone{}, err
	}
	for _, f := range freqs {
		eff.Freq = append(eff.Freq, uint16(f))
	}

	vols, err := numbers(tbl, "volume", 0xff)
	if err != nil {
		return audio.Tone{}, err
	}
	for _, v := range vols {
		eff.Volume = append(eff.Volume, uint8(v))
	}

	durations := []struct {
		key string
		dst *uint8
	}{
		{"attack", &eff.Attack},
		{"decay", &eff.Decay},
		{"sustain", &eff.Sustain},
		{"release", &eff.Release},
	}
	for _, d := range durations {
		n, err := numbers(tbl, d.key, 0xff)
		if err != nil {
			return audio.Tone{}, err
		}
		switch len(n) {
		case 0:
		case 1:
			*d.dst = uint8(n[0])
		default:
			return audio.Tone{}, fmt.Errorf("%s: number expected", d.key)
		}
	}

	texts := []struct {
		key string
		dst interface{ UnmarshalText([]byte) error }
	}{
		{"channel", &eff.Channel},
		{"duty", &eff.Duty},
		{"pan", &eff.Pan},
	}
	for _, t := range texts {
		switch v := tbl.RawGetString(t.key).(type) {
		case *lua.LNilType:
		case lua.LString:
			if err := t.dst.UnmarshalText([]byte(v)); err != nil {
				return audio.Tone{}, fmt.Errorf("%s: %w", t.key, err)
			}
		default:
			return audio.Tone{}, fmt.Errorf("%s: string expected, got %s", t.key, v.Type())
		}
	}

	return eff.Tone()
}

// numbers returns the integers of tbl[key], either a single number or an
// array of numbers, each in [0, hi].
func numbers(tbl *lua.LTable, key string, hi int) ([]int, error) {
	check := func(v lua.LValue) (int, error) {
		n, ok := v.(lua.LNumber)
		if !ok || n != lua.LNumber(int(n)) {
			return 0, fmt.Errorf("%s: integer expected, got %s", key, v.String())
		}
		if n < 0 || int(n) > hi {
			return 0, fmt.Errorf("%s: %d not in [0, %d]", key, int(n), hi)
		}
		return int(n), nil
	}

	switch v := tbl.RawGetString(key).(type) {
	case *lua.LNilType:
		return nil, nil
	case *lua.LTable:
		ns := make([]int, 0, v.Len())
		for i := 1; i <= v.Len(); i++ {
			n, err := check(v.RawGetInt(i))
			if err != nil {
				return nil, err
			}
			ns = append(ns, n)
		}
		return ns, nil
	default:
		n, err := check(v)
		if err != nil {
			return nil, err
		}
		return []int{n}, nil
	}
}
