package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/root4loot/goutils/log"
	"github.com/root4loot/viewshot/pkg/viewshot"
)

const (
	author  = "@danielantonsen"
	version = "0.1.0"
	usage   = `USAGE:
  viewshot [options]

Captures http://localhost:8080/index.html at desktop (1400x900) and mobile
(iPhone 12 Pro) sizes, saving screenshot_desktop.png and screenshot_mobile.png.

OPTIONS:
  -e,   --engine                 browser automation engine (rod, chromedp)              (Default: rod)
        --debug                  enable debug mode
        --version                display version
  -h,   --help                   display this help
`
)

type cli struct {
	Engine  string
	Debug   bool
	Help    bool
	Version bool
}

func init() {
	log.Init("viewshot")
}

func main() {
	cli := &cli{}
	if err := cli.parseFlags(os.Args[1:], os.Stdout); err != nil {
		log.Errorf("%v", err)
		os.Exit(2)
	}

	if cli.Help {
		fmt.Print(usage)
		os.Exit(0)
	}

	if cli.Version {
		fmt.Println("viewshot", version, "by", author)
		os.Exit(0)
	}

	viewshot.SetDebug(cli.Debug)

	engine, err := viewshot.EngineByName(cli.Engine, viewshot.NewOptions())
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	runner := viewshot.NewRunnerWithEngine(engine)
	err = runner.Run(ctx)
	stop()

	if err != nil {
		log.Fatalf("%v", err)
	}
}

func (c *cli) parseFlags(args []string, output io.Writer) error {
	fs := flag.NewFlagSet("viewshot", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&c.Engine, "engine", viewshot.DefaultEngine, "")
	fs.StringVar(&c.Engine, "e", viewshot.DefaultEngine, "")
	fs.BoolVar(&c.Debug, "debug", false, "")
	fs.BoolVar(&c.Help, "help", false, "")
	fs.BoolVar(&c.Help, "h", false, "")
	fs.BoolVar(&c.Version, "version", false, "")

	fs.Usage = func() {
		fmt.Fprint(output, usage)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	c.Engine = strings.ToLower(strings.TrimSpace(c.Engine))
	return nil
}
