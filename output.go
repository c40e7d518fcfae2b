package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-faster/jx"

	"w4kit/emu"
	"w4kit/hw/audio"
	"w4kit/hw/gfx"
	"w4kit/hw/hwdefs"
	"w4kit/hw/input"
)

// printer prints command results, as text or as JSON lines (one object per
// result).
type printer struct {
	w    io.Writer
	json bool
	buf  bytes.Buffer
}

func newPrinter(w io.Writer, json bool) *printer {
	return &printer{w: w, json: json}
}

func (p *printer) emit(text func(w io.Writer), obj func(e *jx.Encoder)) {
	if !p.json {
		text(&p.buf)
		return
	}
	var e jx.Encoder
	e.Obj(obj)
	p.buf.Write(e.Bytes())
	p.buf.WriteByte('\n')
}

// flush writes the pending results.
func (p *printer) flush() error {
	_, err := p.w.Write(p.buf.Bytes())
	p.buf.Reset()
	return err
}

func (p *printer) version(v string) {
	p.emit(
		func(w io.Writer) { fmt.Fprintln(w, "w4kit", v) },
		func(e *jx.Encoder) { e.Field("version", func(e *jx.Encoder) { e.Str(v) }) },
	)
}

func (p *printer) drawColors(reg uint16, idx [hwdefs.NumDrawColors]gfx.PaletteIndex) {
	p.emit(
		func(w io.Writer) {
			fmt.Fprintf(w, "register: 0x%04x\n", reg)
			for i, pi := range idx {
				fmt.Fprintf(w, "  %-8s %s\n", gfx.DrawColor(i), pi)
			}
		},
		func(e *jx.Encoder) {
			e.Field("register", func(e *jx.Encoder) { e.Str(fmt.Sprintf("0x%04x", reg)) })
			e.Field("colors", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for i, pi := range idx {
						e.Obj(func(e *jx.Encoder) {
							e.Field("role", func(e *jx.Encoder) { e.Str(gfx.DrawColor(i).String()) })
							e.Field("index", func(e *jx.Encoder) { e.Int(int(pi)) })
						})
					}
				})
			})
		},
	)
}

func encodeTone(e *jx.Encoder, t audio.Tone) {
	words := t.Words()
	e.Obj(func(e *jx.Encoder) {
		e.Field("tone", func(e *jx.Encoder) { e.Str(t.String()) })
		e.Field("words", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, w := range words {
					e.Str(fmt.Sprintf("0x%08x", w))
				}
			})
		})
		e.Field("frames", func(e *jx.Encoder) { e.Int(t.Frames()) })
	})
}

func (p *printer) tone(t audio.Tone) {
	p.emit(
		func(w io.Writer) {
			words := t.Words()
			fmt.Fprintln(w, t)
			fmt.Fprintf(w, "freq: 0x%08x duration: 0x%08x volume: 0x%08x flags: 0x%08x\n",
				words[0], words[1], words[2], words[3])
			fmt.Fprintf(w, "length: %d frames (%.3fs)\n", t.Frames(), t.Seconds())
		},
		func(e *jx.Encoder) {
			e.Field("tone", func(e *jx.Encoder) { encodeTone(e, t) })
		},
	)
}

func (p *printer) rendered(paths []string) {
	p.emit(
		func(w io.Writer) {
			for _, path := range paths {
				fmt.Fprintln(w, "rendered", path)
			}
		},
		func(e *jx.Encoder) {
			e.Field("rendered", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, path := range paths {
						e.Str(path)
					}
				})
			})
		},
	)
}

func (p *printer) config(path string, cfg emu.Config) {
	p.emit(
		func(w io.Writer) {
			fmt.Fprintln(w, "config file:", path)
			fmt.Fprintln(w, "frames:", cfg.General.Frames)
			fmt.Fprintln(w, "sample rate:", cfg.Audio.SampleRate)
			fmt.Fprintln(w, "audio disabled:", cfg.Audio.DisableAudio)
			fmt.Fprintln(w, "palette:", cfg.Video.Palette)
		},
		func(e *jx.Encoder) {
			e.Field("path", func(e *jx.Encoder) { e.Str(path) })
			e.Field("frames", func(e *jx.Encoder) { e.Int(cfg.General.Frames) })
			e.Field("sample_rate", func(e *jx.Encoder) { e.Int(cfg.Audio.SampleRate) })
			e.Field("disable_audio", func(e *jx.Encoder) { e.Bool(cfg.Audio.DisableAudio) })
			e.Field("palette", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, c := range cfg.Video.Palette {
						e.Str(c.String())
					}
				})
			})
		},
	)
}

func encodeEvent(e *jx.Encoder, ev input.Event) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("pad", func(e *jx.Encoder) { e.Int(ev.Gamepad + 1) })
		e.Field("button", func(e *jx.Encoder) { e.Str(ev.Button.String()) })
		e.Field("kind", func(e *jx.Encoder) { e.Str(ev.Kind.String()) })
	})
}

func (p *printer) replay(r *replayResult) {
	p.emit(
		func(w io.Writer) {
			fmt.Fprintf(w, "frames: %d\n", r.Frames)
			for _, rec := range r.Events {
				for _, ev := range rec.Events {
					fmt.Fprintf(w, "frame %d: pad %d %s %s\n", rec.Frame, ev.Gamepad+1, ev.Button, ev.Kind)
				}
			}
			for _, te := range r.Tones {
				fmt.Fprintf(w, "frame %d: tone %s\n", te.Frame, te.Tone)
			}
			for _, msg := range r.Traces {
				fmt.Fprintf(w, "trace: %s\n", msg)
			}
			for _, dc := range r.DrawCalls {
				fmt.Fprintf(w, "draw: %s\n", dc)
			}
		},
		func(e *jx.Encoder) {
			e.Field("frames", func(e *jx.Encoder) { e.UInt64(r.Frames) })
			e.Field("events", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, rec := range r.Events {
						e.Obj(func(e *jx.Encoder) {
							e.Field("frame", func(e *jx.Encoder) { e.UInt64(rec.Frame) })
							e.Field("events", func(e *jx.Encoder) {
								e.Arr(func(e *jx.Encoder) {
									for _, ev := range rec.Events {
										encodeEvent(e, ev)
									}
								})
							})
						})
					}
				})
			})
			e.Field("tones", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, te := range r.Tones {
						e.Obj(func(e *jx.Encoder) {
							e.Field("frame", func(e *jx.Encoder) { e.UInt64(te.Frame) })
							e.Field("tone", func(e *jx.Encoder) { encodeTone(e, te.Tone) })
						})
					}
				})
			})
			e.Field("traces", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, msg := range r.Traces {
						e.Str(msg)
					}
				})
			})
			e.Field("draw_calls", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, dc := range r.DrawCalls {
						e.Str(dc.String())
					}
				})
			})
		},
	)
}
