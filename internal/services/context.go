package services

import "context"

type contextKey string

const (
	runIDKey     contextKey = "run_id"
	operationKey contextKey = "operation"
	documentKey  contextKey = "document"
)

// WithRunID annotates context with the identifier of the current run.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithOperation annotates context with the organizing operation name (pair, sort, link...).
func WithOperation(ctx context.Context, operation string) context.Context {
	if operation == "" {
		return ctx
	}
	return context.WithValue(ctx, operationKey, operation)
}

// OperationFromContext returns the operation name if present.
func OperationFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(operationKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithDocument annotates context with the file currently being processed.
func WithDocument(ctx context.Context, name string) context.Context {
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, documentKey, name)
}

// DocumentFromContext returns the current file name if present.
func DocumentFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(documentKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
