package hwio

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// InitRegs initializes all the registers (Reg8, Reg16 and Reg32 fields) of the
// structure pointed to by ptr. Registers are configured with a "hwio" struct
// tag holding a comma-separated list of options:
//
//	reset=0x12      Initial value of the register.
//
//	rwmask=0xF0     Mask of the bits that can be modified by writes. By default
//	                all bits are writable.
//
//	readonly        Writes are ignored (and logged).
//	writeonly       Reads return 0 (and are logged).
//
//	rcb[=Name]      Install a read callback. The callback is the method of ptr
//	                named Name, or Read<FIELD> (uppercase field name) if no
//	                name is given. Its signature is func(val T) T.
//
//	wcb[=Name]      Install a write callback, Write<FIELD> by default, with
//	                signature func(old, val T).
//
// The register Name is set to the struct field name.
func InitRegs(ptr any) error {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("hwio: InitRegs wants a pointer to struct, got %T", ptr)
	}

	s := v.Elem()
	st := s.Type()
	for i := range st.NumField() {
		sf := st.Field(i)
		tag, ok := sf.Tag.Lookup("hwio")
		if !ok || !sf.IsExported() {
			continue
		}

		opts, err := parseTag(tag)
		if err != nil {
			return fmt.Errorf("hwio: field %s: %v", sf.Name, err)
		}

		var ierr error
		switch reg := s.Field(i).Addr().Interface().(type) {
		case *Reg8:
			ierr = initReg(reg, sf.Name, opts, v)
		case *Reg16:
			ierr = initReg(reg, sf.Name, opts, v)
		case *Reg32:
			ierr = initReg(reg, sf.Name, opts, v)
		default:
			ierr = fmt.Errorf("unsupported register type %s", sf.Type)
		}
		if ierr != nil {
			return fmt.Errorf("hwio: field %s: %v", sf.Name, ierr)
		}
	}
	return nil
}

// MustInitRegs is like InitRegs but panics on error.
func MustInitRegs(ptr any) {
	if err := InitRegs(ptr); err != nil {
		panic(err)
	}
}

type tagOpts map[string]string

func parseTag(tag string) (tagOpts, error) {
	opts := make(tagOpts)
	for _, opt := range strings.Split(tag, ",") {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}
		key, val, _ := strings.Cut(opt, "=")
		switch key {
		case "reset", "rwmask", "readonly", "writeonly", "rcb", "wcb":
		default:
			return nil, fmt.Errorf("unknown option %q", key)
		}
		opts[key] = val
	}
	return opts, nil
}

func initReg[T Word](reg *Reg[T], name string, opts tagOpts, owner reflect.Value) error {
	bits := int(reflect.TypeFor[T]().Bits())

	reg.Name = name
	if s, ok := opts["reset"]; ok {
		val, err := strconv.ParseUint(s, 0, bits)
		if err != nil {
			return fmt.Errorf("invalid reset value %q: %v", s, err)
		}
		reg.Value = T(val)
	}
	if s, ok := opts["rwmask"]; ok {
		val, err := strconv.ParseUint(s, 0, bits)
		if err != nil {
			return fmt.Errorf("invalid rwmask %q: %v", s, err)
		}
		reg.RoMask = ^T(val)
	}
	if _, ok := opts["readonly"]; ok {
		reg.Flags |= ReadOnlyFlag
	}
	if _, ok := opts["writeonly"]; ok {
		reg.Flags |= WriteOnlyFlag
	}

	if cbname, ok := opts["rcb"]; ok {
		if cbname == "" {
			cbname = "Read" + strings.ToUpper(name)
		}
		m := owner.MethodByName(cbname)
		if !m.IsValid() {
			return fmt.Errorf("read callback %s not found", cbname)
		}
		cb, ok := m.Interface().(func(T) T)
		if !ok {
			return fmt.Errorf("read callback %s has wrong signature %s", cbname, m.Type())
		}
		reg.ReadCb = cb
	}
	if cbname, ok := opts["wcb"]; ok {
		if cbname == "" {
			cbname = "Write" + strings.ToUpper(name)
		}
		m := owner.MethodByName(cbname)
		if !m.IsValid() {
			return fmt.Errorf("write callback %s not found", cbname)
		}
		cb, ok := m.Interface().(func(T, T))
		if !ok {
			return fmt.Errorf("write callback %s has wrong signature %s", cbname, m.Type())
		}
		reg.WriteCb = cb
	}
	return nil
}
