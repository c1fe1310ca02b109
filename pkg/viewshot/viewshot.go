package viewshot

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/root4loot/goutils/log"
)

const (
	// TargetURL is the page both passes capture.
	TargetURL = "http://localhost:8080/index.html"

	// SettleDelay is waited out after navigation, before capture.
	SettleDelay = 2 * time.Second
)

// Options contains the browser options shared by all engines.
type Options struct {
	Headless    bool   // Run without a visible window
	NoSandbox   bool   // Disable the Chromium sandbox
	BrowserPath string // Browser binary, looked up when empty
}

// NewOptions returns Options initialized with default values.
func NewOptions() Options {
	return Options{
		Headless:  true,
		NoSandbox: true,
	}
}

// Runner captures a page once per shot, in order.
type Runner struct {
	Engine      Engine
	TargetURL   string
	SettleDelay time.Duration
	Shots       []Shot
	Output      io.Writer // receives one confirmation line per saved shot

	sleep func(ctx context.Context, d time.Duration) error
}

// NewRunner returns a Runner for the desktop and mobile shots of TargetURL, on the rod engine.
func NewRunner() *Runner {
	return NewRunnerWithEngine(NewRodEngine(NewOptions()))
}

// NewRunnerWithEngine returns the default Runner driving engine.
func NewRunnerWithEngine(engine Engine) *Runner {
	return &Runner{
		Engine:      engine,
		TargetURL:   TargetURL,
		SettleDelay: SettleDelay,
		Shots:       DefaultShots(),
		Output:      os.Stdout,
		sleep:       sleep,
	}
}

// SetDebug enables or disables debug logging.
func SetDebug(debug bool) {
	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func Init() {
	log.Init("viewshot")
	log.SetLevel(log.InfoLevel)
}

// Run launches a browser session and captures every shot in order. The first
// failure stops the run; files saved before it are kept. The session is shut
// down on every return path.
func (r *Runner) Run(ctx context.Context) (err error) {
	session, err := r.Engine.Launch(ctx)
	if err != nil {
		return err
	}

	defer func() {
		log.Debugf("Shutting down browser")
		if cerr := session.Close(); cerr != nil {
			if err == nil {
				err = fmt.Errorf("error closing browser: %w", cerr)
			} else {
				log.Debugf("Error closing browser: %v", cerr)
			}
		}
	}()

	for _, shot := range r.Shots {
		if err := r.capture(ctx, session, shot); err != nil {
			return err
		}
	}

	return nil
}

func (r *Runner) capture(ctx context.Context, session Session, shot Shot) error {
	log.Debugf("Opening %s context (%dx%d @%gx)", shot.Label, shot.Profile.Width, shot.Profile.Height, shot.Profile.scale())

	tab, err := session.OpenContext(ctx, shot.Profile)
	if err != nil {
		return fmt.Errorf("%s: %w", shot.Label, err)
	}
	defer func() {
		if err := tab.Close(); err != nil {
			log.Debugf("Error closing %s context: %v", shot.Label, err)
		}
	}()

	log.Debugf("Navigating to %s", r.TargetURL)
	if err := tab.Navigate(ctx, r.TargetURL); err != nil {
		return fmt.Errorf("%s: error navigating to %s: %w", shot.Label, r.TargetURL, err)
	}

	if r.SettleDelay > 0 {
		log.Debugf("Waiting %v before capture", r.SettleDelay)
		if err := r.wait(ctx, r.SettleDelay); err != nil {
			return fmt.Errorf("%s: %w", shot.Label, err)
		}
	}

	img, err := tab.Screenshot(ctx)
	if err != nil {
		return fmt.Errorf("%s: error capturing screenshot: %w", shot.Label, err)
	}

	if w, h, err := img.Dimensions(); err == nil {
		log.Debugf("Captured %s: %dx%d pixels, %d bytes", shot.Label, w, h, len(img))
	}

	if err := img.Save(shot.Filename); err != nil {
		return fmt.Errorf("%s: error saving screenshot to %s: %w", shot.Label, shot.Filename, err)
	}

	if r.Output != nil {
		fmt.Fprintf(r.Output, "%s screenshot taken.\n", shot.Label)
	}

	return nil
}

func (r *Runner) wait(ctx context.Context, d time.Duration) error {
	if r.sleep == nil {
		return sleep(ctx, d)
	}
	return r.sleep(ctx, d)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
