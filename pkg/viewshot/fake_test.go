package viewshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"
	"sync"

	"github.com/fogleman/gg"
)

// fakeEngine records every call made by a Runner and renders solid PNGs
// sized like the emulated viewport.
type fakeEngine struct {
	mu     sync.Mutex
	calls  []string
	failOn map[string]error // keyed by "<step> <profile>"
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{failOn: map[string]error{}}
}

func (e *fakeEngine) record(call string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, call)
	return e.failOn[call]
}

func (e *fakeEngine) Calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.calls...)
}

func (e *fakeEngine) Launch(context.Context) (Session, error) {
	if err := e.record("launch"); err != nil {
		return nil, err
	}
	return &fakeSession{engine: e}, nil
}

type fakeSession struct {
	engine *fakeEngine
}

func (s *fakeSession) OpenContext(_ context.Context, p Profile) (Tab, error) {
	if err := s.engine.record("open " + p.Name); err != nil {
		return nil, err
	}
	return &fakeTab{engine: s.engine, profile: p}, nil
}

func (s *fakeSession) Close() error {
	return s.engine.record("close")
}

type fakeTab struct {
	engine  *fakeEngine
	profile Profile
}

func (t *fakeTab) Navigate(context.Context, string) error {
	return t.engine.record("navigate " + t.profile.Name)
}

func (t *fakeTab) Screenshot(context.Context) (Image, error) {
	if err := t.engine.record("screenshot " + t.profile.Name); err != nil {
		return nil, err
	}
	w := int(math.Round(float64(t.profile.Width) * t.profile.scale()))
	h := int(math.Round(float64(t.profile.Height) * t.profile.scale()))
	return renderPNG(w, h)
}

func (t *fakeTab) Close() error {
	return t.engine.record("close " + t.profile.Name)
}

func renderPNG(width, height int) (Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", width, height)
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.Black)
	dc.DrawRectangle(0, 0, float64(width)/2, float64(height)/2)
	dc.Fill()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return Image(buf.Bytes()), nil
}

var errNavigation = errors.New("net::ERR_CONNECTION_REFUSED")
