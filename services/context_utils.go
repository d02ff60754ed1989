package services

import "context"

// persistentContext keeps ctx values but drops its cancellation, so audit
// writes finish after the client has gone away.
func persistentContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return context.WithoutCancel(ctx)
}
