package ssz

import (
	"fmt"
	"strings"

	"github.com/ethlightclient/verifier/primitives"
)

// DumpOptions controls the rendering of Dump.
type DumpOptions struct {
	// HexIntegers renders UInt values as 0x-prefixed hex instead of decimal.
	HexIntegers bool
}

// Dump renders v as human-readable, JSON-like text for logs and test
// oracles. It never fails: malformed sub-regions are rendered as an inline
// error marker rather than aborting the whole dump.
func Dump(v *Value, opts DumpOptions) string {
	var b strings.Builder
	dump(&b, v, opts, 0)
	return b.String()
}

func dump(b *strings.Builder, v *Value, opts DumpOptions, depth int) {
	switch v.D.Kind {
	case KindUInt:
		n, err := primitives.DecodeUintLE(v.D.Width/8, v.Data)
		if err != nil {
			fmt.Fprintf(b, "<invalid uint%d>", v.D.Width)
			return
		}
		if opts.HexIntegers {
			fmt.Fprintf(b, "0x%x", n)
		} else {
			b.WriteString(n.Text(10))
		}

	case KindBoolean:
		b.WriteString(fmt.Sprintf("%t", len(v.Data) == 1 && v.Data[0] == 1))

	case KindByteVector, KindBytes:
		b.WriteString(primitives.BytesToHex(v.Data))

	case KindBitVector, KindBitList:
		b.WriteString(dumpBits(v))

	case KindVector, KindList:
		it, err := Iterate(v)
		if err != nil {
			b.WriteString("<invalid sequence>")
			return
		}
		b.WriteString("[")
		first := true
		for {
			el, ok := it.Next()
			if !ok {
				break
			}
			if !first {
				b.WriteString(", ")
			}
			first = false
			dump(b, el, opts, depth+1)
		}
		b.WriteString("]")

	case KindContainer:
		b.WriteString("{")
		for i, f := range v.D.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%q: ", f.Name)
			fv, err := Index(v, f.Name)
			if err != nil {
				b.WriteString("<error>")
				continue
			}
			if IsNone(fv) {
				b.WriteString("null")
				continue
			}
			dump(b, fv, opts, depth+1)
		}
		b.WriteString("}")

	case KindUnion:
		sel, err := Selector(v)
		if err != nil {
			b.WriteString("<invalid union>")
			return
		}
		alt := v.D.Alternatives[sel]
		fmt.Fprintf(b, "{%q: ", alt.Name)
		pv, err := Payload(v)
		if err != nil {
			b.WriteString("<error>}")
			return
		}
		if IsNone(pv) {
			b.WriteString("null}")
			return
		}
		dump(b, pv, opts, depth+1)
		b.WriteString("}")

	case KindOptionalMask:
		b.WriteString(dumpBits(v))

	default:
		b.WriteString("<unsupported>")
	}
}

func dumpBits(v *Value) string {
	n := v.D.N
	if v.D.Kind == KindBitList {
		length, err := bitlistLength(v.Data, v.D.Limit, nil)
		if err != nil {
			return "<invalid bitlist>"
		}
		n = length
	}
	if v.D.Kind == KindOptionalMask {
		n = v.D.MaskBits
	}
	bits := unpackBits(v.Data, n)
	var b strings.Builder
	b.WriteString("[")
	for i, bit := range bits {
		if i > 0 {
			b.WriteString(",")
		}
		if bit {
			b.WriteString("1")
		} else {
			b.WriteString("0")
		}
	}
	b.WriteString("]")
	return b.String()
}
