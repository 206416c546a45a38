// Package main is the entry point for swiftfmtenv.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/donaldgifford/swiftfmtenv/internal/runner"
)

// Build-time variables set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	settingsPath := flag.String("settings", "", "path to settings file")
	workspaces := flag.String("workspace", "", "comma-separated workspace folder roots")
	searchPaths := flag.Bool("search-paths", false, "print the swift-format configuration search paths")
	findConfig := flag.Bool("find-config", false, "print the swift-format configuration file in use")
	resetPath := flag.Bool("reset-path", false, "clear the path setting")
	configure := flag.Bool("configure", false, "open the settings file in $EDITOR")
	verbose := flag.Bool("v", false, "log resolution decisions")
	showVersion := flag.Bool("version", false, "print version and exit")

	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("swiftfmtenv %s (%s) %s\n", version, commit, date)
		return
	}

	if flag.NArg() > 1 {
		usage()
		os.Exit(runner.ExitError)
	}

	opts := &runner.Options{
		Document:     flag.Arg(0),
		SettingsPath: *settingsPath,
		Workspaces:   splitList(*workspaces),
		SearchPaths:  *searchPaths,
		FindConfig:   *findConfig,
		ResetPath:    *resetPath,
		Configure:    *configure,
		Verbose:      *verbose,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := runner.Run(ctx, opts)
	stop()
	os.Exit(code)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: swiftfmtenv [flags] [document]

Print the swift-format command for document, one token per line.
Exits 1 when formatting is disabled or suppressed for the document.

Flags:
`)
	flag.PrintDefaults()
}
