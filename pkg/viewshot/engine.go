package viewshot

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownEngine is returned by EngineByName for unregistered names.
var ErrUnknownEngine = errors.New("unknown engine")

// Engine starts browser sessions.
type Engine interface {
	Launch(ctx context.Context) (Session, error)
}

// Session is a running browser owned by a single run.
type Session interface {
	// OpenContext opens an isolated browsing context emulating p, with one
	// blank page in it.
	OpenContext(ctx context.Context, p Profile) (Tab, error)
	Close() error
}

// Tab is a page inside its own browsing context.
type Tab interface {
	Navigate(ctx context.Context, url string) error
	Screenshot(ctx context.Context) (Image, error)
	// Close disposes the page together with its browsing context.
	Close() error
}

// DefaultEngine is the engine used when none is selected.
const DefaultEngine = "rod"

var engines = map[string]func(Options) Engine{
	"rod":      func(o Options) Engine { return NewRodEngine(o) },
	"chromedp": func(o Options) Engine { return NewChromedpEngine(o) },
}

// EngineByName returns the registered engine called name.
func EngineByName(name string, options Options) (Engine, error) {
	newEngine, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownEngine, name, EngineNames())
	}
	return newEngine(options), nil
}

// EngineNames lists the registered engines.
func EngineNames() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
