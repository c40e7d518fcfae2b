// Package luacart runs cartridges written in Lua.
//
// A Lua cartridge is a script defining up to three global functions: start,
// called once, then update and render, called at every frame. The console is
// reached through these global functions:
//
//	btn(pad, button)          true while button is held on gamepad pad (1 to 4)
//	btnp(pad, button)         true on the frame button is pressed
//	btnr(pad, button)         true on the frame button is released
//	color(c1, c2, c3, c4)     set the draw colors (0 to 4), nil keeps a color
//	palette(i [, "#rrggbb"])  get or set palette color i (1 to 4)
//	tone{...}                 play a tone, see sfx.Effect for the fields
//	rect(x, y, w, h)
//	line(x1, y1, x2, y2)
//	oval(x, y, w, h)
//	text(s, x, y)
//	trace(msg)
//	frame()                   number of frames run so far
//
// Buttons are named "x", "z" (or "y"), "left", "right", "up" and "down".
package luacart

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"

	"w4kit/cart"
	"w4kit/emu/log"
	"w4kit/hw/gfx"
	"w4kit/hw/hwdefs"
	"w4kit/hw/input"
)

// Cart is a running Lua cartridge.
type Cart struct {
	name string
	L    *lua.LState
	sys  *cart.System

	// First runtime error. Once set, callbacks are no longer called.
	err error
}

// Load returns the start function of the cartridge whose source is src. name
// identifies the script in error messages.
func Load(name, src string) cart.StartFunc {
	return func(sys *cart.System) (cart.Application, error) {
		c := &Cart{
			name: name,
			L:    newState(),
			sys:  sys,
		}
		c.register()

		fn, err := c.L.LoadString(src)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		c.L.Push(fn)
		if err := c.L.PCall(0, lua.MultRet, nil); err != nil {
			c.Close()
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		if err := c.call("start"); err != nil {
			c.Close()
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		log.ModCart.InfoZ("lua cartridge loaded").String("name", name).End()
		return c, nil
	}
}

// LoadFile returns the start function of the cartridge stored at path.
func LoadFile(path string) (cart.StartFunc, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(filepath.Base(path), string(buf)), nil
}

// Close releases the Lua state.
func (c *Cart) Close() {
	c.L.Close()
}

// Err returns the error that stopped the cartridge, if any.
func (c *Cart) Err() error { return c.err }

// call calls the global function name, if defined.
func (c *Cart) call(name string) error {
	fn := c.L.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return nil
	}
	return c.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true})
}

func (c *Cart) run(name string) {
	if c.err != nil {
		return
	}
	if err := c.call(name); err != nil {
		c.err = fmt.Errorf("%s: %s: %w", c.name, name, err)
		log.ModCart.ErrorZ("lua cartridge halted").
			Uint64("frame", c.sys.Frame()).
			Error("err", c.err).
			End()
		c.sys.Trace(c.err.Error())
	}
}

func (c *Cart) Update(sys *cart.System)    { c.run("update") }
func (c *Cart) Render(fb *gfx.Framebuffer) { c.run("render") }

// newState returns a Lua state with the libraries safe for a cartridge: no
// file or OS access.
func newState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	libs := []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	}
	for _, lib := range libs {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	return L
}

func (c *Cart) register() {
	funcs := map[string]lua.LGFunction{
		"btn":     c.btn,
		"btnp":    c.btnp,
		"btnr":    c.btnr,
		"color":   c.color,
		"palette": c.palette,
		"tone":    c.tone,
		"rect":    c.rect,
		"line":    c.line,
		"oval":    c.oval,
		"text":    c.text,
		"trace":   c.trace,
		"frame":   c.frame,
	}
	for name, fn := range funcs {
		c.L.SetGlobal(name, c.L.NewFunction(fn))
	}
}

func checkGamepad(L *lua.LState, sys *cart.System) *input.Gamepad {
	pad := L.CheckInt(1)
	if pad < 1 || pad > hwdefs.NumGamepads {
		L.ArgError(1, fmt.Sprintf("gamepad must be in [1, %d]", hwdefs.NumGamepads))
	}
	return sys.Inputs.Gamepad(pad - 1)
}

func checkButton(L *lua.LState, n int) input.Button {
	var b input.Button
	if err := b.UnmarshalText([]byte(L.CheckString(n))); err != nil {
		L.ArgError(n, err.Error())
	}
	return b
}

func (c *Cart) btn(L *lua.LState) int {
	gp := checkGamepad(L, c.sys)
	L.Push(lua.LBool(gp.Held(checkButton(L, 2))))
	return 1
}

func (c *Cart) btnp(L *lua.LState) int {
	gp := checkGamepad(L, c.sys)
	L.Push(lua.LBool(gp.Pressed(checkButton(L, 2))))
	return 1
}

func (c *Cart) btnr(L *lua.LState) int {
	gp := checkGamepad(L, c.sys)
	L.Push(lua.LBool(gp.Released(checkButton(L, 2))))
	return 1
}

func (c *Cart) color(L *lua.LState) int {
	var sel [hwdefs.NumDrawColors]gfx.Selection
	for i := range sel {
		v := L.Get(i + 1)
		if v == lua.LNil {
			continue
		}
		n, ok := v.(lua.LNumber)
		if !ok || n < 0 || n > 4 || n != lua.LNumber(int(n)) {
			L.ArgError(i+1, "palette index (0 to 4) or nil expected")
		}
		sel[i] = gfx.Use(gfx.PaletteIndex(n))
	}
	c.sys.Framebuffer.SetDrawColors(sel)
	return 0
}

func (c *Cart) palette(L *lua.LState) int {
	i := L.CheckInt(1)
	if i < 1 || i > hwdefs.NumPaletteColors {
		L.ArgError(1, fmt.Sprintf("palette entry must be in [1, %d]", hwdefs.NumPaletteColors))
	}
	if L.GetTop() < 2 {
		L.Push(lua.LString(c.sys.Framebuffer.PaletteColor(i - 1).String()))
		return 1
	}

	var col gfx.Color
	if err := col.UnmarshalText([]byte(L.CheckString(2))); err != nil {
		L.ArgError(2, err.Error())
	}
	c.sys.Framebuffer.SetPaletteColor(i-1, col)
	return 0
}

func (c *Cart) tone(L *lua.LState) int {
	t, err := toneFromTable(L.CheckTable(1))
	if err != nil {
		L.ArgError(1, err.Error())
	}
	c.sys.Audio.Play(t)
	return 0
}

func (c *Cart) rect(L *lua.LState) int {
	c.sys.Framebuffer.Rect(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4))
	return 0
}

func (c *Cart) line(L *lua.LState) int {
	c.sys.Framebuffer.Line(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4))
	return 0
}

func (c *Cart) oval(L *lua.LState) int {
	c.sys.Framebuffer.Oval(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4))
	return 0
}

func (c *Cart) text(L *lua.LState) int {
	c.sys.Framebuffer.Text(L.CheckString(1), L.CheckInt(2), L.CheckInt(3))
	return 0
}

func (c *Cart) trace(L *lua.LState) int {
	c.sys.Trace(L.CheckString(1))
	return 0
}

func (c *Cart) frame(L *lua.LState) int {
	L.Push(lua.LNumber(c.sys.Frame()))
	return 1
}
