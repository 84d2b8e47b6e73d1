package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "signature mismatch",
			err: &Error{
				Phase:  PhaseValidate,
				Kind:   KindTypeMismatch,
				Export: "get_counter",
				Want:   "() -> (i32)",
				Got:    "() -> (i64)",
				Detail: "result differs",
			},
			contains: []string{"[validate]", "type_mismatch", "export get_counter", "want () -> (i32)", "got () -> (i64)", " - result differs"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseLoad,
				Kind:  KindInvalidData,
			},
			contains: []string{"[load]", "invalid_data"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseRuntime,
				Kind:   KindCallFailed,
				Detail: "trap",
				Cause:  errors.New("unreachable"),
			},
			contains: []string{"[runtime]", "call_failed", ": trap", "caused by", "unreachable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := CallFailed("increment", cause)

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not reach cause")
	}
}

func TestError_Is(t *testing.T) {
	err := MissingExport("increment")

	if !err.Is(&Error{Phase: PhaseValidate, Kind: KindNotFound}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseRuntime, Kind: KindNotFound}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseValidate, Kind: KindTypeMismatch}) {
		t.Error("Is should not match different kind")
	}

	var wrapped error = Load("compile", err)
	if !errors.Is(wrapped, &Error{Phase: PhaseValidate, Kind: KindNotFound}) {
		t.Error("errors.Is should match through the cause chain")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseValidate, KindTypeMismatch).
		Export("get_counter").
		Signature("() -> (i32)", "(i32) -> (i32)").
		Cause(cause).
		Detail("expected %d params, got %d", 0, 1).
		Build()

	if err.Phase != PhaseValidate {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseValidate)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if err.Export != "get_counter" {
		t.Errorf("Export = %v, want get_counter", err.Export)
	}
	if err.Want != "() -> (i32)" || err.Got != "(i32) -> (i32)" {
		t.Errorf("Want=%v Got=%v", err.Want, err.Got)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected 0 params, got 1" {
		t.Errorf("Detail = %v, want 'expected 0 params, got 1'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		err   *Error
		name  string
		phase Phase
		kind  Kind
	}{
		{Load("compile", cause), "Load", PhaseLoad, KindInvalidData},
		{ParseFailed("WIT", cause), "ParseFailed", PhaseParse, KindInvalidData},
		{Unsupported(PhaseParse, "string results"), "Unsupported", PhaseParse, KindUnsupported},
		{MissingExport("increment"), "MissingExport", PhaseValidate, KindNotFound},
		{SignatureMismatch("get_counter", "a", "b"), "SignatureMismatch", PhaseValidate, KindTypeMismatch},
		{Instantiation(cause), "Instantiation", PhaseRuntime, KindInstantiation},
		{CallFailed("increment", cause), "CallFailed", PhaseRuntime, KindCallFailed},
		{NotInitialized("instance"), "NotInitialized", PhaseRuntime, KindNotInitialized},
		{InvalidInput(PhaseRuntime, "bad"), "InvalidInput", PhaseRuntime, KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("Phase = %v, want %v", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
		})
	}

	if got := ParseFailed("WIT", cause).Detail; got != "parse WIT" {
		t.Errorf("ParseFailed detail = %q", got)
	}
	if got := NotInitialized("instance").Detail; got != "instance not initialized" {
		t.Errorf("NotInitialized detail = %q", got)
	}
}

func TestExportConstructors(t *testing.T) {
	cause := errors.New("unreachable")

	tests := []struct {
		err  *Error
		name string
		want string
	}{
		{MissingExport("increment"), "MissingExport", "[validate] not_found export increment: function not exported"},
		{SignatureMismatch("get_counter", "() -> (i32)", "() -> (i64)"), "SignatureMismatch", "[validate] type_mismatch export get_counter: want () -> (i32), got () -> (i64)"},
		{CallFailed("increment", cause), "CallFailed", "[runtime] call_failed export increment (caused by: unreachable)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}

	if !errors.Is(CallFailed("increment", cause), cause) {
		t.Error("CallFailed should keep its cause")
	}
}
