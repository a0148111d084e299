package metrics

import "go.uber.org/fx"

// Module provides a single Metrics instance.
var Module = fx.Provide(New)
