package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"

	"golang.org/x/term"

	"w4kit/emu"
	"w4kit/emu/log"
)

func main() {
	log.SetOutput(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())))

	cli := parseArgs(os.Args[1:])
	cfg := emu.LoadConfigOrDefault()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := newPrinter(os.Stdout, cli.JSON)

	switch cli.mode {
	case drawColorsMode:
		checkf(drawColorsMain(out, cli.DrawColors), "draw-colors")
	case toneMode:
		checkf(toneMain(ctx, out, cli.Tone, cfg), "tone")
	case sfxRenderMode:
		checkf(sfxRenderMain(ctx, out, cli.Sfx.Render, cfg), "sfx render")
	case sfxPlayMode:
		checkf(sfxPlayMain(ctx, cli.Sfx.Play, cfg), "sfx play")
	case replayMode:
		checkf(replayMain(out, cli.Replay, cfg), "replay")
	case configMode:
		checkf(configMain(out, cli.Config, cfg), "config")
	case versionMode:
		out.version(version())
	}
	checkf(out.flush(), "failed to write output")
}

func version() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "" {
		return "(devel)"
	}
	return bi.Main.Version
}

func configMain(out *printer, args ConfigCmd, cfg emu.Config) error {
	dir, err := emu.ConfigDir()
	if err != nil {
		return err
	}
	if args.Save {
		if err := emu.SaveConfig(cfg); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "configuration saved")
	}
	out.config(filepath.Join(dir, "config.toml"), cfg)
	return nil
}
