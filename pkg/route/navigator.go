package route

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName identifies this module's spans in the global tracer provider.
const tracerName = "vireo"

// Navigator computes patched locations and issues exactly one history call
// per navigation. It never retries; a failed Push or Replace returns the
// history's error unchanged.
//
// Each navigation is recorded as a span on the global OpenTelemetry tracer
// provider; with no provider configured the spans are no-ops.
type Navigator struct {
	hist   History
	tracer trace.Tracer
}

// NewNavigator creates a navigator over the given history.
func NewNavigator(h History) *Navigator {
	if h == nil {
		panic("vireo: route: NewNavigator requires a history")
	}
	return &Navigator{
		hist:   h,
		tracer: otel.Tracer(tracerName),
	}
}

// Location returns the history's current location.
func (n *Navigator) Location() Location {
	return n.hist.Current()
}

// Push patches the current location with the given mutations and pushes the
// result as a new history entry.
func (n *Navigator) Push(query, params Mutation) error {
	return n.navigate(query, params, false)
}

// Replace patches the current location with the given mutations and
// replaces the current history entry with the result.
func (n *Navigator) Replace(query, params Mutation) error {
	return n.navigate(query, params, true)
}

func (n *Navigator) navigate(query, params Mutation, replace bool) error {
	next := Patch(n.hist.Current(), query, params, "")

	mode := "push"
	if replace {
		mode = "replace"
	}
	_, span := n.tracer.Start(context.Background(), "vireo.navigate",
		trace.WithAttributes(
			attribute.String("vireo.mode", mode),
			attribute.String("vireo.route", next.Name),
		),
	)
	defer span.End()

	var err error
	if replace {
		err = n.hist.Replace(next)
	} else {
		err = n.hist.Push(next)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
