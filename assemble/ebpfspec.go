package assemble

import (
	"github.com/cilium/ebpf"

	"github.com/kprobelower/kprobelower/ir"
)

// ToMapSpec converts one lowered Map into a cilium/ebpf MapSpec: the
// declaration a downstream loader would hand to the kernel to create the
// map this program's probes stash into and read from. It deliberately
// stops at the declaration — loading an object, attaching a uprobe, or
// reading a ringbuf are the downstream generator's job (spec §6), not
// this pass's.
func ToMapSpec(m *ir.Map, structs *ir.Struct) (*ebpf.MapSpec, error) {
	if m.ValueType == "" {
		return nil, &ir.InvariantViolationError{
			Context: "ebpf map spec for " + m.Name,
			Reason:  "map has no value type; no stash action has targeted it",
		}
	}
	keySize, err := scalarSize(m.KeyType)
	if err != nil {
		return nil, err
	}
	valueSize, err := structSize(structs)
	if err != nil {
		return nil, err
	}
	return &ebpf.MapSpec{
		Name:       m.Name,
		Type:       ebpf.Hash,
		KeySize:    keySize,
		ValueSize:  valueSize,
		MaxEntries: 1024,
	}, nil
}

func structSize(s *ir.Struct) (uint32, error) {
	var total uint32
	for _, f := range s.Fields {
		size, err := scalarSize(f.Type)
		if err != nil {
			return 0, err
		}
		total += size
	}
	return total, nil
}

// scalarSize is the in-map byte width of a scalar type. STRING and
// BYTE_ARRAY never appear in a map key/value struct in this pass (they
// are Go-only leaf exceptions for argument/return expressions), so they
// have no defined size here.
func scalarSize(t ir.ScalarType) (uint32, error) {
	switch t {
	case ir.ScalarBool, ir.ScalarInt8, ir.ScalarUint8, ir.ScalarChar, ir.ScalarUChar:
		return 1, nil
	case ir.ScalarInt16, ir.ScalarUint16, ir.ScalarShort, ir.ScalarUShort:
		return 2, nil
	case ir.ScalarInt32, ir.ScalarUint32, ir.ScalarInt, ir.ScalarUint, ir.ScalarFloat:
		return 4, nil
	case ir.ScalarInt64, ir.ScalarUint64, ir.ScalarLong, ir.ScalarULong,
		ir.ScalarLongLong, ir.ScalarULongLong, ir.ScalarDouble, ir.ScalarVoidPointer:
		return 8, nil
	default:
		return 0, &ir.TypeUnsupportedError{Language: "ebpf map spec", Kind: "scalar", TypeName: t.String()}
	}
}
