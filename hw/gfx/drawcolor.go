package gfx

import (
	"fmt"
	"strconv"
	"strings"

	"w4kit/emu/log"
	"w4kit/hw/hwdefs"
	"w4kit/hw/hwio"
)

//go:generate go tool stringer -type=PaletteIndex,DrawColor -linecomment

// PaletteIndex selects the color used for a drawing role: transparent, or one
// of the 4 palette colors.
type PaletteIndex uint8

const (
	Transparent PaletteIndex = iota // transparent
	Palette1                        // palette1
	Palette2                        // palette2
	Palette3                        // palette3
	Palette4                        // palette4

	numPaletteIndexes
)

// DrawColor identifies one of the 4 roles of the draw colors register.
type DrawColor uint8

const (
	DrawColor1 DrawColor = iota // fill
	DrawColor2                  // outline
	DrawColor3                  // color3
	DrawColor4                  // color4
)

// Layout of the draw colors register: one nibble per role, the first role in
// the least significant nibble.
var drawColorFields = [hwdefs.NumDrawColors]hwio.Field[uint16]{
	hwio.NewField[uint16]("DRAW_COLOR_1", 0, 4),
	hwio.NewField[uint16]("DRAW_COLOR_2", 4, 4),
	hwio.NewField[uint16]("DRAW_COLOR_3", 8, 4),
	hwio.NewField[uint16]("DRAW_COLOR_4", 12, 4),
}

// Offset returns the bit offset of the role nibble.
func (dc DrawColor) Offset() uint8 {
	return drawColorFields[dc].Shift
}

// A Selection is the palette index to assign to a drawing role, or Keep to
// leave the role untouched. The zero value is Keep.
type Selection struct {
	idx PaletteIndex
	set bool
}

// Keep leaves the role as it currently is in the register.
var Keep = Selection{}

// Use selects the palette index p.
func Use(p PaletteIndex) Selection {
	return Selection{idx: p, set: true}
}

// Index returns the selected index, and false if s is Keep.
func (s Selection) Index() (PaletteIndex, bool) {
	return s.idx, s.set
}

func (s Selection) String() string {
	if !s.set {
		return "-"
	}
	return strconv.Itoa(int(s.idx))
}

// ParseSelection parses "-" (or "keep") as Keep and "0" to "4" as the
// corresponding palette index.
func ParseSelection(s string) (Selection, error) {
	s = strings.TrimSpace(s)
	if s == "-" || s == "keep" {
		return Keep, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n >= int(numPaletteIndexes) {
		return Keep, fmt.Errorf("invalid draw color selection %q (want -, 0, 1, 2, 3 or 4)", s)
	}
	return Use(PaletteIndex(n)), nil
}

// Selections returns the selections for the 4 draw colors roles, in order.
// Missing trailing roles are kept, extra indexes are ignored.
func Selections(idx ...PaletteIndex) [hwdefs.NumDrawColors]Selection {
	var sel [hwdefs.NumDrawColors]Selection
	for i, p := range idx[:min(len(idx), len(sel))] {
		sel[i] = Use(p)
	}
	return sel
}

func (p PaletteIndex) valid() bool { return p < numPaletteIndexes }

// EncodeDrawColors returns reg with the roles updated by sel. Roles whose
// selection is Keep retain their bits from reg. So do roles selecting an index
// above 4, which are logged.
func EncodeDrawColors(reg uint16, sel [hwdefs.NumDrawColors]Selection) uint16 {
	for i, s := range sel {
		idx, ok := s.Index()
		if !ok {
			continue
		}
		if !idx.valid() {
			log.ModGfx.ErrorZ("invalid palette index").
				Stringer("role", DrawColor(i)).
				Uint8("index", uint8(idx)).
				End()
			continue
		}
		reg = drawColorFields[i].Set(reg, uint16(idx))
	}
	return reg
}

// DecodeDrawColors returns the palette index of each role in reg. A role
// holding a value above 4 causes a *hwio.DecodeError.
func DecodeDrawColors(reg uint16) ([hwdefs.NumDrawColors]PaletteIndex, error) {
	var idx [hwdefs.NumDrawColors]PaletteIndex
	for i, f := range drawColorFields {
		v := f.Get(reg)
		if v >= uint16(numPaletteIndexes) {
			return idx, &hwio.DecodeError{Field: f.Name, Value: uint32(v)}
		}
		idx[i] = PaletteIndex(v)
	}
	return idx, nil
}
