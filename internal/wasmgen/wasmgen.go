// Package wasmgen emits the reference counter module as a core wasm binary.
//
// The module keeps the counter in a mutable i32 global and exports
// increment and get_counter over it. By default it needs no imports and no
// memory, so any host can load it without a wasm toolchain on hand.
package wasmgen

// Export names of the counter module.
const (
	ExportIncrement  = "increment"
	ExportGetCounter = "get_counter"
	ExportInitialize = "_initialize"
)

// WASIModule is the import namespace used by WithWASIImport.
const WASIModule = "wasi_snapshot_preview1"

const (
	sectionType   byte = 1
	sectionImport byte = 2
	sectionFunc   byte = 3
	sectionGlobal byte = 6
	sectionExport byte = 7
	sectionCode   byte = 10

	funcTypeMarker byte = 0x60
	valI32         byte = 0x7F
	valI64         byte = 0x7E
	kindFunc       byte = 0x00
	mutable        byte = 0x01

	opEnd          byte = 0x0B
	opGlobalGet    byte = 0x23
	opGlobalSet    byte = 0x24
	opI32Const     byte = 0x41
	opI32Add       byte = 0x6A
	opI64ExtendI32 byte = 0xAC
)

// type indices
const (
	typeVoid uint32 = iota
	typeValue
	typeExit
)

var magic = []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}

type config struct {
	omit       map[string]bool
	initial    int32
	startValue *int32
	wideValue  bool
	wasiImport bool
}

// Option adjusts the emitted module.
type Option func(*config)

// WithInitial starts the counter global at v instead of zero.
func WithInitial(v int32) Option {
	return func(c *config) { c.initial = v }
}

// WithoutExport leaves the named function unexported.
func WithoutExport(name string) Option {
	return func(c *config) {
		if c.omit == nil {
			c.omit = make(map[string]bool)
		}
		c.omit[name] = true
	}
}

// WithI64Result makes get_counter return the value sign-extended to i64.
// Such a module does not satisfy the counter interface.
func WithI64Result() Option {
	return func(c *config) { c.wideValue = true }
}

// WithInitializer adds an _initialize export that stores v in the counter,
// mimicking the start-up hook of a WASI reactor.
func WithInitializer(v int32) Option {
	return func(c *config) { c.startValue = &v }
}

// WithWASIImport adds an (unused) import of wasi_snapshot_preview1.proc_exit.
func WithWASIImport() Option {
	return func(c *config) { c.wasiImport = true }
}

type function struct {
	name    string
	typeIdx uint32
	body    []byte
}

// Counter returns the binary of the counter module.
func Counter(opts ...Option) []byte {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	getBody := []byte{opGlobalGet, 0}
	if cfg.wideValue {
		getBody = append(getBody, opI64ExtendI32)
	}
	funcs := []function{
		{ExportIncrement, typeVoid, []byte{opGlobalGet, 0, opI32Const, 1, opI32Add, opGlobalSet, 0}},
		{ExportGetCounter, typeValue, getBody},
	}
	if cfg.startValue != nil {
		set := &buffer{}
		set.put(opI32Const)
		set.i32(*cfg.startValue)
		set.raw(opGlobalSet, 0)
		funcs = append(funcs, function{ExportInitialize, typeVoid, set.bytes})
	}

	out := &buffer{}
	out.raw(magic...)

	types := &buffer{}
	result := valI32
	if cfg.wideValue {
		result = valI64
	}
	if cfg.wasiImport {
		types.u32(3)
	} else {
		types.u32(2)
	}
	types.raw(funcTypeMarker, 0, 0)
	types.raw(funcTypeMarker, 0, 1, result)
	if cfg.wasiImport {
		types.raw(funcTypeMarker, 1, valI32, 0)
	}
	out.section(sectionType, types)

	var imported uint32
	if cfg.wasiImport {
		imports := &buffer{}
		imports.u32(1)
		imports.name(WASIModule)
		imports.name("proc_exit")
		imports.put(kindFunc)
		imports.u32(typeExit)
		out.section(sectionImport, imports)
		imported = 1
	}

	decls := &buffer{}
	decls.u32(uint32(len(funcs)))
	for _, f := range funcs {
		decls.u32(f.typeIdx)
	}
	out.section(sectionFunc, decls)

	globals := &buffer{}
	globals.u32(1)
	globals.raw(valI32, mutable, opI32Const)
	globals.i32(cfg.initial)
	globals.put(opEnd)
	out.section(sectionGlobal, globals)

	exports := &buffer{}
	var count uint32
	entries := &buffer{}
	for i, f := range funcs {
		if cfg.omit[f.name] {
			continue
		}
		entries.name(f.name)
		entries.put(kindFunc)
		entries.u32(imported + uint32(i))
		count++
	}
	exports.u32(count)
	exports.raw(entries.bytes...)
	out.section(sectionExport, exports)

	code := &buffer{}
	code.u32(uint32(len(funcs)))
	for _, f := range funcs {
		body := &buffer{}
		body.u32(0) // no locals
		body.raw(f.body...)
		body.put(opEnd)
		code.vec(body)
	}
	out.section(sectionCode, code)

	return out.bytes
}
