package workflow

import (
	"log/slog"

	"github.com/JaimeStill/triage/internal/actions"
	"github.com/JaimeStill/triage/internal/invoker"
	"github.com/JaimeStill/triage/internal/schema"
)

// Runtime bundles the dependencies that pipeline nodes require.
// It is constructed by higher-level composition code and shared across runs;
// per-run state lives on the run itself.
type Runtime struct {
	Invoker invoker.System
	Schemas *schema.Validator
	Actions *actions.Dispatcher
	Logger  *slog.Logger
}
