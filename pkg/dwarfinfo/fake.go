package dwarfinfo

// FakeReader is an in-memory Reader used by tests that have no compiled
// binary to point a real ELFReader at, the same way delve's own godwarf
// tests build small synthetic DWARF trees rather than compiling fixtures
// for every unit test.
type FakeReader struct {
	Args    map[string]map[string]ArgInfo // symbol -> arg name -> info
	Rets    map[string]RetInfo            // symbol -> return info
	Members map[string]map[string]MemberInfo // type name -> field -> info
}

// NewFakeReader returns an empty FakeReader ready to be populated by a
// test.
func NewFakeReader() *FakeReader {
	return &FakeReader{
		Args:    make(map[string]map[string]ArgInfo),
		Rets:    make(map[string]RetInfo),
		Members: make(map[string]map[string]MemberInfo),
	}
}

func (f *FakeReader) FunctionArgInfo(symbol string) (map[string]ArgInfo, error) {
	args, ok := f.Args[symbol]
	if !ok {
		return nil, ErrNotFound
	}
	return args, nil
}

func (f *FakeReader) FunctionRetInfo(symbol string) (RetInfo, error) {
	ret, ok := f.Rets[symbol]
	if !ok {
		return RetInfo{}, ErrNotFound
	}
	return ret, nil
}

func (f *FakeReader) StructMemberInfo(typeName, field string) (MemberInfo, error) {
	fields, ok := f.Members[typeName]
	if !ok {
		return MemberInfo{}, ErrNotFound
	}
	m, ok := fields[field]
	if !ok {
		return MemberInfo{}, ErrNotFound
	}
	return m, nil
}

func (f *FakeReader) Close() error { return nil }
