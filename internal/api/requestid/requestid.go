// Package requestid carries the per-request log id through a context.
package requestid

import "context"

type logIDKeyType struct{}

var logIDKey logIDKeyType

// Inject stores the log id in a context.
func Inject(ctx context.Context, id uint64) context.Context {
	return context.WithValue(ctx, logIDKey, id)
}

// Extract returns the log id and whether one was injected.
func Extract(ctx context.Context) (uint64, bool) {
	id, ok := ctx.Value(logIDKey).(uint64)
	return id, ok
}
