package host

import (
	"regexp"
	"strings"

	"github.com/tetratelabs/wazero/api"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/wasm-counter/errors"
)

// CounterWIT declares the functions a counter module must export.
const CounterWIT = `
increment: func();
get-counter: func() -> s32;
`

// Function is one function of a WIT interface together with the core wasm
// signature it lowers to.
type Function struct {
	Name        string
	Params      []wit.Type
	Results     []wit.Type
	coreParams  []api.ValueType
	coreResults []api.ValueType
}

// Export returns the core export name, snake_case for the kebab-case WIT name.
func (f *Function) Export() string {
	return ExportName(f.Name)
}

func (f *Function) String() string {
	var b strings.Builder
	b.WriteString(f.Name)
	b.WriteString(": func(")
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(witTypeStr(p))
	}
	b.WriteByte(')')
	if len(f.Results) == 1 {
		b.WriteString(" -> ")
		b.WriteString(witTypeStr(f.Results[0]))
	}
	return b.String()
}

// ExportName maps a WIT function name to its core export name.
func ExportName(witName string) string {
	return strings.ReplaceAll(witName, "-", "_")
}

var funcPattern = regexp.MustCompile(`(?:export\s+)?([a-zA-Z_][a-zA-Z0-9_-]*)\s*:\s*func\s*\(([^)]*)\)(?:\s*->\s*([^;\n]+))?`)

// ParseInterface extracts function declarations from WIT text.
// Pattern: [export] name: func(params) -> result;
// Only scalar types are accepted since the counter interface passes
// nothing through linear memory.
func ParseInterface(witText string) ([]*Function, error) {
	var funcs []*Function

	for _, match := range funcPattern.FindAllStringSubmatch(witText, -1) {
		fn := &Function{Name: match[1]}

		if params := strings.TrimSpace(match[2]); params != "" {
			for _, p := range strings.Split(params, ",") {
				typStr := p
				if idx := strings.LastIndex(p, ":"); idx != -1 {
					typStr = p[idx+1:]
				}
				t, err := wit.ParseType(strings.TrimSpace(typStr))
				if err != nil {
					return nil, errors.ParseFailed("param type "+strings.TrimSpace(typStr), err)
				}
				fn.Params = append(fn.Params, t)
			}
		}

		if result := strings.TrimSpace(match[3]); result != "" && result != "()" {
			t, err := wit.ParseType(result)
			if err != nil {
				return nil, errors.ParseFailed("result type "+result, err)
			}
			fn.Results = []wit.Type{t}
		}

		var err error
		if fn.coreParams, err = coreTypes(fn.Params); err != nil {
			return nil, err
		}
		if fn.coreResults, err = coreTypes(fn.Results); err != nil {
			return nil, err
		}

		funcs = append(funcs, fn)
	}

	if len(funcs) == 0 {
		return nil, errors.InvalidInput(errors.PhaseParse, "no functions found in WIT text")
	}

	return funcs, nil
}

func coreTypes(types []wit.Type) ([]api.ValueType, error) {
	out := make([]api.ValueType, 0, len(types))
	for _, t := range types {
		switch t.(type) {
		case wit.Bool, wit.U8, wit.S8, wit.U16, wit.S16, wit.U32, wit.S32, wit.Char:
			out = append(out, api.ValueTypeI32)
		case wit.U64, wit.S64:
			out = append(out, api.ValueTypeI64)
		case wit.F32:
			out = append(out, api.ValueTypeF32)
		case wit.F64:
			out = append(out, api.ValueTypeF64)
		default:
			return nil, errors.Unsupported(errors.PhaseParse, "non-scalar WIT type "+witTypeStr(t))
		}
	}
	return out, nil
}

func witTypeStr(t wit.Type) string {
	switch t.(type) {
	case wit.Bool:
		return "bool"
	case wit.U8:
		return "u8"
	case wit.S8:
		return "s8"
	case wit.U16:
		return "u16"
	case wit.S16:
		return "s16"
	case wit.U32:
		return "u32"
	case wit.S32:
		return "s32"
	case wit.U64:
		return "u64"
	case wit.S64:
		return "s64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.Char:
		return "char"
	case wit.String:
		return "string"
	default:
		return "unknown"
	}
}

func coreSignature(params, results []api.ValueType) string {
	var b strings.Builder
	writeList := func(types []api.ValueType) {
		b.WriteByte('(')
		for i, t := range types {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(api.ValueTypeName(t))
		}
		b.WriteByte(')')
	}
	writeList(params)
	b.WriteString(" -> ")
	writeList(results)
	return b.String()
}
