// log хранит логгер запроса в context.Context.
package log

import (
	"context"
	"log/slog"
)

type loggerKey struct{}

// Into возвращает контекст с логгером l. nil не сохраняется.
func Into(ctx context.Context, l *slog.Logger) context.Context {
	if l == nil {
		return ctx
	}

	return context.WithValue(ctx, loggerKey{}, l)
}

// With дописывает атрибуты к логгеру контекста.
func With(ctx context.Context, attrs ...slog.Attr) context.Context {
	if len(attrs) == 0 {
		return ctx
	}

	args := make([]any, 0, len(attrs))
	for _, a := range attrs {
		args = append(args, a)
	}

	return Into(ctx, From(ctx).With(args...))
}

// From возвращает логгер контекста, без него slog.Default().
func From(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}

	return slog.Default()
}
