package obs

import "context"

type patternKey struct{}

// WithRoutePattern records the chi pattern that matched the request, so log
// and metric labels stay low-cardinality instead of carrying raw paths.
func WithRoutePattern(ctx context.Context, pattern string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, patternKey{}, pattern)
}

// RoutePatternFromContext returns the recorded pattern, or "" when the
// request never matched a route.
func RoutePatternFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	pattern, _ := ctx.Value(patternKey{}).(string)
	return pattern
}
