package logs

import (
	"context"
	"errors"
	"fmt"
)

// WrapSpan attaches the span in ctx to err, so an error reported far from
// its log lines can be matched with them.
func WrapSpan(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	span, ok := ctx.Value(SpanKey).(Span)
	if !ok {
		return err
	}
	return errors.Join(err, fmt.Errorf("span: %s", span))
}
