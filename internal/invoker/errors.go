package invoker

import "errors"

// ErrModelInvocation is returned when the model boundary call itself fails:
// provider faults, timeouts, or responses that are not structured data.
var ErrModelInvocation = errors.New("model invocation failed")
