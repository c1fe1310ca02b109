package viewshot

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/root4loot/goutils/log"
)

// RodEngine drives Chromium through go-rod.
type RodEngine struct {
	options Options
}

// NewRodEngine returns a rod engine using options.
func NewRodEngine(options Options) *RodEngine {
	return &RodEngine{options: options}
}

// Launch starts a browser process and connects to it.
func (e *RodEngine) Launch(ctx context.Context) (Session, error) {
	path := e.options.BrowserPath
	if path == "" {
		path, _ = launcher.LookPath()
	}

	l := launcher.New().
		Context(ctx).
		Headless(e.options.Headless).
		NoSandbox(e.options.NoSandbox)

	if path != "" {
		l = l.Bin(path)
	}

	log.Debugf("Launching browser %q (headless: %t)", path, e.options.Headless)

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("error launching browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("error connecting to browser: %w", err)
	}

	return &rodSession{launcher: l, browser: browser}, nil
}

type rodSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
}

func (s *rodSession) OpenContext(ctx context.Context, p Profile) (Tab, error) {
	incognito, err := s.browser.Context(ctx).Incognito()
	if err != nil {
		return nil, fmt.Errorf("error creating browser context: %w", err)
	}

	tab := &rodTab{context: incognito}

	tab.page, err = incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		tab.Close()
		return nil, fmt.Errorf("error opening page: %w", err)
	}

	if err := emulateRod(tab.page, p); err != nil {
		tab.Close()
		return nil, fmt.Errorf("error emulating %s: %w", p.Name, err)
	}

	return tab, nil
}

func emulateRod(page *rod.Page, p Profile) error {
	if err := page.SetViewport(p.Metrics()); err != nil {
		return err
	}

	if p.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: p.UserAgent}); err != nil {
			return err
		}
	}

	if p.Touch {
		return proto.EmulationSetTouchEmulationEnabled{Enabled: true}.Call(page)
	}

	return nil
}

func (s *rodSession) Close() error {
	err := s.browser.Close()
	s.launcher.Kill()
	s.launcher.Cleanup()
	return err
}

type rodTab struct {
	context *rod.Browser
	page    *rod.Page
}

func (t *rodTab) Navigate(ctx context.Context, url string) error {
	page := t.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return err
	}
	return page.WaitLoad()
}

func (t *rodTab) Screenshot(ctx context.Context) (Image, error) {
	data, err := t.page.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, err
	}
	return Image(data), nil
}

// Close disposes the incognito context, which also closes its pages.
func (t *rodTab) Close() error {
	return t.context.Close()
}
