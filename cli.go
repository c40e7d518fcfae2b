package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"w4kit/emu/log"
	"w4kit/hw/audio"
)

type mode byte

const (
	drawColorsMode mode = iota // Encode draw colors
	toneMode                   // Encode and play a tone
	sfxRenderMode              // Render a sound bank
	sfxPlayMode                // Play a sound bank effect
	replayMode                 // Replay a cartridge
	configMode                 // Show or save the configuration
	versionMode                // Show w4kit version
)

type (
	CLI struct {
		DrawColors DrawColors `cmd:"" help:"Encode a draw colors register." name:"draw-colors"`
		Tone       Tone       `cmd:"" help:"Encode, render or play a tone."`
		Sfx        Sfx        `cmd:"" help:"Sound effect banks."`
		Replay     Replay     `cmd:"" help:"Run a cartridge on the headless host."`
		Config     ConfigCmd  `cmd:"" help:"Show or save the configuration." name:"config"`
		Version    Version    `cmd:"" help:"Show w4kit version."`

		Log  logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
		JSON bool       `name:"json" help:"Print results as JSON."`

		mode mode
	}

	DrawColors struct {
		Selections []string `arg:"" name:"selection" help:"${selection_help}"`
		Reg        string   `name:"reg" help:"Initial register value." default:"0x1203"`
	}

	Tone struct {
		Freq    []uint16        `name:"freq" help:"Start and optional end frequencies, in Hz." required:"" sep:","`
		Attack  int             `name:"attack" help:"Attack duration."`
		Decay   int             `name:"decay" help:"Decay duration."`
		Sustain int             `name:"sustain" help:"Sustain duration." default:"30"`
		Release int             `name:"release" help:"Release duration."`
		Millis  bool            `name:"ms" help:"Durations are in milliseconds instead of frames."`
		Volume  []uint8         `name:"volume" help:"Peak and optional sustain volumes, in percent." sep:","`
		Channel audio.Channel   `name:"channel" help:"pulse1, pulse2, triangle or noise." default:"pulse1"`
		Duty    audio.DutyCycle `name:"duty" help:"12.5%, 25%, 50% or 75%." default:"12.5%"`
		Pan     audio.Pan       `name:"pan" help:"center, left or right." default:"center"`
		Play    bool            `name:"play" help:"Play the tone."`
		WAV     string          `name:"wav" help:"Render the tone into a WAV file." type:"path"`
		Rate    int             `name:"rate" help:"${rate_help}"`
	}

	Sfx struct {
		Render SfxRender `cmd:"" help:"Render all effects of a bank into WAV files."`
		Play   SfxPlay   `cmd:"" help:"Play an effect of a bank."`
	}

	SfxRender struct {
		Bank  string `arg:"" name:"bank" help:"Sound bank (TOML)." type:"existingfile"`
		Out   string `name:"out" help:"Output directory." default:"." type:"existingdir"`
		Rate  int    `name:"rate" help:"${rate_help}"`
		Watch bool   `name:"watch" help:"Render again each time the bank changes."`
	}

	SfxPlay struct {
		Bank string `arg:"" name:"bank" help:"Sound bank (TOML)." type:"existingfile"`
		Name string `arg:"" name:"name" help:"Effect name."`
		Rate int    `name:"rate" help:"${rate_help}"`
	}

	Replay struct {
		Cart   string `name:"cart" help:"${cart_help}" type:"existingfile"`
		Script string `name:"script" help:"${script_help}" type:"existingfile"`
		Frames int    `name:"frames" help:"Number of frames to run (default from script or config)."`
		WAV    string `name:"wav" help:"Write the audio output into a WAV file." type:"path"`
	}

	ConfigCmd struct {
		Save bool `name:"save" help:"Write the current configuration into the config file."`
	}

	Version struct{}
)

var vars = kong.Vars{
	"log_help":       "Enable logging for specified modules.",
	"selection_help": "Palette index (0 to 4) for each draw color, in order, or '-' to keep it.",
	"rate_help":      "Sample rate in Hz (default from config).",
	"cart_help":      "Lua cartridge to run (default: built-in input probe).",
	"script_help":    "JSON input script.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("w4kit"),
		kong.Description("Fantasy console hardware toolkit."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch commandPath(ctx.Command()) {
	case "draw-colors":
		cfg.mode = drawColorsMode
	case "tone":
		cfg.mode = toneMode
	case "sfx render":
		cfg.mode = sfxRenderMode
	case "sfx play":
		cfg.mode = sfxPlayMode
	case "replay":
		cfg.mode = replayMode
	case "config":
		cfg.mode = configMode
	case "version":
		cfg.mode = versionMode
	default:
		fatalf("unexpected command %q", ctx.Command())
	}
	return cfg
}

// commandPath strips the positional arguments from a kong command, for
// example "sfx render <bank>" becomes "sfx render".
func commandPath(cmd string) string {
	var words []string
	for _, w := range strings.Fields(cmd) {
		if strings.HasPrefix(w, "<") || w == "..." {
			continue
		}
		words = append(words, w)
	}
	return strings.Join(words, " ")
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if ctx.Command() == "" {
		loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
		var strs []string
		for _, m := range log.ModuleNames() {
			strs = append(strs, "    - "+m)
		}

		fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	}

	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	mask, nolog, err := parseLogModules(tok.Value.(string))
	if err != nil {
		return err
	}
	if nolog {
		log.Disable()
		return nil
	}
	log.EnableDebugModules(mask)
	return nil
}

func parseLogModules(s string) (mask log.ModuleMask, nolog bool, err error) {
	allLogs := false
	for _, v := range strings.Split(s, ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return 0, false, fmt.Errorf("unknown log module %s", v)
			}
			mask |= mod.Mask()
		}
	}

	if nolog {
		if allLogs {
			return 0, false, fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if mask != 0 {
			return 0, false, fmt.Errorf("cannot combine 'no' with other log modules")
		}
		return 0, true, nil
	}

	if allLogs {
		mask = log.ModuleMaskAll
	}
	return mask, false, nil
}

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
