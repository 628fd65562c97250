package core

import "github.com/go-mason/mason/pkg/errors"

// DebugChecks makes pass-invariant violations fatal. With checks off,
// violations are reported to the global error handler and execution
// continues best-effort. Tests run with checks on.
var DebugChecks = true

// checkPassEntered verifies that a widget's pass-entry method called
// ctx.Init() as required by the Widget contract.
func checkPassEntered(pass, widgetType string, initted bool) {
	if initted {
		return
	}
	err := &errors.InvariantError{
		Widget: widgetType,
		Pass:   pass,
		Detail: "pass-entry method did not call ctx.Init()",
	}
	if DebugChecks {
		panic(err)
	}
	errors.ReportInvariant(err)
}
