package actionevent

import (
	"events2/internal/lib/propertymapping"
	"log/slog"
)

// Argument is a named action argument together with its property mapping.
type Argument struct {
	Name    string
	mapping *propertymapping.Configuration
}

func (a *Argument) PropertyMappingConfiguration() *propertymapping.Configuration {
	return a.mapping
}

type Arguments map[string]*Argument

// NewArguments creates arguments with empty property mappings.
func NewArguments(names ...string) Arguments {
	args := make(Arguments, len(names))
	for _, name := range names {
		args[name] = &Argument{Name: name, mapping: propertymapping.New()}
	}

	return args
}

// Argument returns the named argument or nil.
func (a Arguments) Argument(name string) *Argument {
	return a[name]
}

// PreProcessControllerActionEvent is dispatched before a controller action
// decodes its arguments.
type PreProcessControllerActionEvent struct {
	Controller string
	Action     string
	Arguments  Arguments
}

type Listener interface {
	Handle(e *PreProcessControllerActionEvent)
}

type ListenerFunc func(e *PreProcessControllerActionEvent)

func (f ListenerFunc) Handle(e *PreProcessControllerActionEvent) {
	f(e)
}

type Dispatcher struct {
	log       *slog.Logger
	listeners []Listener
}

func NewDispatcher(log *slog.Logger, listeners ...Listener) *Dispatcher {
	return &Dispatcher{
		log:       log,
		listeners: listeners,
	}
}

// Dispatch runs all listeners in registration order.
func (d *Dispatcher) Dispatch(e *PreProcessControllerActionEvent) {
	d.log.Debug("dispatching action event",
		slog.String("controller", e.Controller),
		slog.String("action", e.Action),
	)

	for _, l := range d.listeners {
		l.Handle(e)
	}
}
