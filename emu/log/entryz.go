package log

import (
	"fmt"
	"sync"
	"time"

	"gopkg.in/Sirupsen/logrus.v0"
)

const maxZFields = 16

// EntryZ is a log entry built field by field, then emitted with End.
//
// A nil *EntryZ is valid: all methods are no-ops on it, so that disabled
// levels cost a single nil check.
//
//	log.ModInput.DebugZ("pressed").Uint8("pad", 1).Stringer("button", b).End()
type EntryZ struct {
	mod Module
	lvl Level
	msg string

	zfbuf [maxZFields]ZField
	zfidx int
}

var entryzPool = sync.Pool{
	New: func() any { return new(EntryZ) },
}

func NewEntryZ() *EntryZ {
	return entryzPool.Get().(*EntryZ)
}

func (z *EntryZ) add(f ZField) *EntryZ {
	if z == nil {
		return nil
	}
	if z.zfidx < len(z.zfbuf) {
		z.zfbuf[z.zfidx] = f
		z.zfidx++
	}
	return z
}

func (z *EntryZ) String(key, val string) *EntryZ {
	return z.add(ZField{Type: FieldTypeString, Key: key, String: val})
}

func (z *EntryZ) Bool(key string, val bool) *EntryZ {
	return z.add(ZField{Type: FieldTypeBool, Key: key, Boolean: val})
}

func (z *EntryZ) Int(key string, val int) *EntryZ {
	return z.add(ZField{Type: FieldTypeInt, Key: key, Integer: uint64(val)})
}

func (z *EntryZ) Int32(key string, val int32) *EntryZ {
	return z.add(ZField{Type: FieldTypeInt, Key: key, Integer: uint64(val)})
}

func (z *EntryZ) Uint(key string, val uint) *EntryZ {
	return z.add(ZField{Type: FieldTypeUint, Key: key, Integer: uint64(val)})
}

func (z *EntryZ) Uint8(key string, val uint8) *EntryZ {
	return z.add(ZField{Type: FieldTypeUint, Key: key, Integer: uint64(val)})
}

func (z *EntryZ) Uint16(key string, val uint16) *EntryZ {
	return z.add(ZField{Type: FieldTypeUint, Key: key, Integer: uint64(val)})
}

func (z *EntryZ) Uint32(key string, val uint32) *EntryZ {
	return z.add(ZField{Type: FieldTypeUint, Key: key, Integer: uint64(val)})
}

func (z *EntryZ) Uint64(key string, val uint64) *EntryZ {
	return z.add(ZField{Type: FieldTypeUint, Key: key, Integer: val})
}

func (z *EntryZ) Hex8(key string, val uint8) *EntryZ {
	return z.add(ZField{Type: FieldTypeHex8, Key: key, Integer: uint64(val)})
}

func (z *EntryZ) Hex16(key string, val uint16) *EntryZ {
	return z.add(ZField{Type: FieldTypeHex16, Key: key, Integer: uint64(val)})
}

func (z *EntryZ) Hex32(key string, val uint32) *EntryZ {
	return z.add(ZField{Type: FieldTypeHex32, Key: key, Integer: uint64(val)})
}

func (z *EntryZ) Error(key string, err error) *EntryZ {
	return z.add(ZField{Type: FieldTypeError, Key: key, Error: err})
}

func (z *EntryZ) Duration(key string, d time.Duration) *EntryZ {
	return z.add(ZField{Type: FieldTypeDuration, Key: key, Duration: d})
}

func (z *EntryZ) Stringer(key string, s fmt.Stringer) *EntryZ {
	return z.add(ZField{Type: FieldTypeStringer, Key: key, Interface: s})
}

func (z *EntryZ) Blob(key string, b []byte) *EntryZ {
	return z.add(ZField{Type: FieldTypeBlob, Key: key, Blob: b})
}

// End emits the entry and recycles it. The entry must not be used afterwards.
func (z *EntryZ) End() {
	if z == nil {
		return
	}

	addContexts(z)

	fields := make(logrus.Fields, z.zfidx+1)
	fields["_mod"] = z.mod.String()
	for i := range z.zfbuf[:z.zfidx] {
		fields[z.zfbuf[i].Key] = z.zfbuf[i].Value()
	}
	entry := logrus.StandardLogger().WithFields(fields)

	lvl, msg := z.lvl, z.msg
	*z = EntryZ{}
	entryzPool.Put(z)

	switch lvl {
	case PanicLevel:
		entry.Panic(msg)
	case FatalLevel:
		entry.Fatal(msg)
	case ErrorLevel:
		entry.Error(msg)
	case WarnLevel:
		entry.Warn(msg)
	case InfoLevel:
		entry.Info(msg)
	default:
		entry.Debug(msg)
	}
}
