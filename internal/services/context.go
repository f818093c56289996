package services

import "context"

type contextKey string

const containerKey contextKey = "container"

// WithContainer records the container path the current operation is working
// on. Logging pulls it back out so every line in a batch carries the file.
func WithContainer(ctx context.Context, path string) context.Context {
	if path == "" {
		return ctx
	}
	return context.WithValue(ctx, containerKey, path)
}

// ContainerFromContext returns the container path stored on the context.
func ContainerFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	path, ok := ctx.Value(containerKey).(string)
	return path, ok && path != ""
}
