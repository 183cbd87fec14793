// FILE: actionlog/src/internal/actionlog/decorator.go
package actionlog

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"actionlog/src/internal/channel"
	"actionlog/src/internal/sink"

	"github.com/lixenwraith/log"
)

// Func is the shape of a function the decorator can wrap
type Func[In, Out any] func(ctx context.Context, in In) (Out, error)

// Decorator logs the start, completion and failure of the functions it wraps.
// It is immutable once built and safe for concurrent use.
type Decorator struct {
	start    MessageTemplate
	complete MessageTemplate
	failure  MessageTemplate
	registry *channel.Registry
	handler  sink.Handler
	logger   *log.Logger
}

// Option configures a Decorator
type Option func(*Decorator)

func WithStartMessage(text string) Option {
	return func(d *Decorator) { d.start = NewMessageTemplate(text) }
}

func WithCompleteMessage(text string) Option {
	return func(d *Decorator) { d.complete = NewMessageTemplate(text) }
}

// WithErrorMessage sets the failure template, which may also use {exception}
func WithErrorMessage(text string) Option {
	return func(d *Decorator) { d.failure = NewMessageTemplate(text) }
}

// WithLogger sets the diagnostics logger
func WithLogger(logger *log.Logger) Option {
	return func(d *Decorator) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Build creates a decorator that attaches handler to the wrapped function's
// channel for the duration of each call. It performs no I/O and cannot fail;
// bad templates are reported when a call formats them.
func Build(registry *channel.Registry, handler sink.Handler, opts ...Option) *Decorator {
	d := &Decorator{
		start:    NewMessageTemplate(DefaultStartMessage),
		complete: NewMessageTemplate(DefaultCompleteMessage),
		failure:  NewMessageTemplate(DefaultErrorMessage),
		registry: registry,
		handler:  handler,
		logger:   log.NewLogger(),
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.registry == nil {
		d.registry = channel.NewRegistry(channel.WithLogger(d.logger))
	}
	if d.handler != nil && !reflect.ValueOf(d.handler).Comparable() {
		d.handler = &boxedHandler{Handler: d.handler}
	}
	return d
}

// boxedHandler gives a handler value that cannot be compared a pointer
// identity, so the channel can reference count it
type boxedHandler struct {
	sink.Handler
}

// WrapOption adjusts how a single wrapped function is identified
type WrapOption func(*callable)

// WithName overrides the name substituted for {callable}
func WithName(name string) WrapOption {
	return func(c *callable) { c.name = name }
}

// WithUnit overrides the channel the function logs to
func WithUnit(unit string) WrapOption {
	return func(c *callable) { c.unit = unit }
}

// Wrap returns fn with start, completion and failure logging around every call.
// Results and errors pass through unchanged.
func Wrap[In, Out any](d *Decorator, fn func(context.Context, In) (Out, error), opts ...WrapOption) Func[In, Out] {
	target := resolveCallable(fn)
	for _, opt := range opts {
		opt(&target)
	}

	return func(ctx context.Context, in In) (Out, error) {
		var out Out
		err := d.invoke(target, func() error {
			var callErr error
			out, callErr = fn(ctx, in)
			return callErr
		})
		return out, err
	}
}

// Run logs around a single call of fn under the given name. The channel is
// the calling package's.
func (d *Decorator) Run(ctx context.Context, name string, fn func(context.Context) error) error {
	target := callable{name: name, unit: callerUnit(1)}
	return d.invoke(target, func() error {
		return fn(ctx)
	})
}

// invoke runs call between the start and outcome records. The handler is
// detached on every exit path, panics included.
func (d *Decorator) invoke(target callable, call func() error) error {
	ch := d.registry.Channel(target.unit)
	if d.handler != nil {
		detach, err := ch.Attach(d.handler)
		if err != nil {
			d.logger.Error("msg", "Cannot attach output handler",
				"component", "decorator",
				"channel", target.unit,
				"error", err)
			return fmt.Errorf("attach output handler: %w", err)
		}
		defer detach()
	}

	msg, err := d.start.Format(nameValues(target))
	if err != nil {
		return d.templateFailed(target, err)
	}
	ch.Info(msg)

	if callErr := d.call(ch, target, call); callErr != nil {
		msg, err := d.failure.Format(failureValues(target, callErr.Error()))
		if err != nil {
			return errors.Join(d.templateFailed(target, err), callErr)
		}
		ch.Error(msg)
		return callErr
	}

	msg, err = d.complete.Format(nameValues(target))
	if err != nil {
		return d.templateFailed(target, err)
	}
	ch.Info(msg)

	return nil
}

// call runs the wrapped function. A panic from it is recorded as a failure
// and re-raised with its original value; panics from handlers are not
// caught here.
func (d *Decorator) call(ch *channel.Channel, target callable, call func() error) error {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		msg, err := d.failure.Format(failureValues(target, fmt.Sprint(r)))
		if err != nil {
			d.templateFailed(target, err)
			panic(r)
		}

		func() {
			defer func() {
				if hr := recover(); hr != nil {
					d.logger.Error("msg", "Output handler panicked on failure record",
						"component", "decorator",
						"callable", target.name,
						"channel", target.unit,
						"panic", fmt.Sprint(hr))
				}
			}()
			ch.Error(msg)
		}()
		panic(r)
	}()

	return call()
}

func (d *Decorator) templateFailed(target callable, err error) error {
	d.logger.Error("msg", "Message template failed",
		"component", "decorator",
		"callable", target.name,
		"channel", target.unit,
		"error", err)
	return err
}

func nameValues(target callable) map[string]string {
	return map[string]string{PlaceholderCallable: target.name}
}

func failureValues(target callable, exception string) map[string]string {
	return map[string]string{
		PlaceholderCallable:  target.name,
		PlaceholderException: exception,
	}
}
