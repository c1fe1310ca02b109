package viewshot

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/root4loot/goutils/log"
)

// ChromedpEngine drives Chromium through chromedp.
type ChromedpEngine struct {
	options Options
}

// NewChromedpEngine returns a chromedp engine using options.
func NewChromedpEngine(options Options) *ChromedpEngine {
	return &ChromedpEngine{options: options}
}

// AllocatorOptions returns the exec allocator options derived from the engine options.
func (e *ChromedpEngine) AllocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)

	// DefaultExecAllocatorOptions already runs headless
	if !e.options.Headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}

	if e.options.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}

	if e.options.BrowserPath != "" {
		opts = append(opts, chromedp.ExecPath(e.options.BrowserPath))
	}

	return opts
}

// Launch starts a browser process through an exec allocator.
func (e *ChromedpEngine) Launch(ctx context.Context) (Session, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, e.AllocatorOptions()...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	log.Debugf("Launching browser (headless: %t)", e.options.Headless)

	// An empty run starts the browser.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("error launching browser: %w", err)
	}

	return &chromedpSession{ctx: browserCtx, cancelAlloc: cancelAlloc}, nil
}

type chromedpSession struct {
	ctx         context.Context
	cancelAlloc context.CancelFunc
}

func (s *chromedpSession) OpenContext(ctx context.Context, p Profile) (Tab, error) {
	tabCtx, cancel := chromedp.NewContext(s.ctx, chromedp.WithNewBrowserContext())
	tab := &chromedpTab{ctx: tabCtx, cancel: cancel}

	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		if e, ok := ev.(*network.EventResponseReceived); ok && e.Type == network.ResourceTypeDocument {
			log.Debugf("%s responded with status %d", e.Response.URL, e.Response.Status)
		}
	})

	if err := tab.run(ctx, emulateChromedp(p)); err != nil {
		tab.Close()
		return nil, fmt.Errorf("error emulating %s: %w", p.Name, err)
	}

	return tab, nil
}

func emulateChromedp(p Profile) chromedp.Action {
	if p.UserAgent != "" {
		return chromedp.Emulate(p.Device())
	}

	opts := []chromedp.EmulateViewportOption{chromedp.EmulateScale(p.scale())}
	if p.Mobile {
		opts = append(opts, chromedp.EmulateMobile)
	}
	if p.Touch {
		opts = append(opts, chromedp.EmulateTouch)
	}

	return chromedp.EmulateViewport(int64(p.Width), int64(p.Height), opts...)
}

func (s *chromedpSession) Close() error {
	err := chromedp.Cancel(s.ctx)
	s.cancelAlloc()
	return err
}

type chromedpTab struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// run executes actions on the tab, aborting them when ctx is done.
func (t *chromedpTab) run(ctx context.Context, actions ...chromedp.Action) error {
	stop := context.AfterFunc(ctx, t.cancel)
	defer stop()
	return chromedp.Run(t.ctx, actions...)
}

func (t *chromedpTab) Navigate(ctx context.Context, url string) error {
	return t.run(ctx, chromedp.Navigate(url))
}

func (t *chromedpTab) Screenshot(ctx context.Context) (Image, error) {
	var buf []byte
	if err := t.run(ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, err
	}
	return Image(buf), nil
}

// Close closes the target and disposes its browser context.
func (t *chromedpTab) Close() error {
	err := chromedp.Cancel(t.ctx)
	t.cancel()
	return err
}
