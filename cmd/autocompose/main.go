// Copyright 2025 The autocompose Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the completion insertion server and CLI [DBG] application.

Note: This is a BETA release. APIs and functionality may rapidly change.

autocompose rewrites a chat input buffer when the user accepts a suggestion.
The text typed since the last trigger character (':' emoji, '#' stream,
'@' mention) is replaced by the completion, and anything after the cursor is
kept as it was. It runs as a MessagePack IPC server for editor and client
integration, or as a CLI application for testing and debugging.

# Usage

Start the server with default settings:

	autocompose

Use a custom config file and enable debug mode:

	autocompose -config ./config.toml -d

Run in CLI mode for interactive testing:

	autocompose -c

# Configuration

Runtime configuration is managed through a TOML file:

	[server]
	max_text_length = 10000
	max_completion_length = 1000
	validate_selection = true

	[cli]
	cursor_marker = "|"
	users = ["alice", "bob"]

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Logs go to stderr.

	{"id": "r1", "t": "hello @al", "c": "alice", "s": 9, "e": 9}
	{"id": "r1", "t": "hello @alice ", "k": 13, "g": "@", "f": true, "us": 3}

See pkg/server for the full message set.

# Command Line Flags

	-version
	    Show current version
	-config string
	    Path to a config file (default [UserConfigDir]/autocompose/config.toml)
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/autocompose/internal/cli"
	"github.com/bastiangx/autocompose/pkg/config"
	"github.com/bastiangx/autocompose/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0-beta"
	AppName = "autocompose"
	gh      = "https://github.com/bastiangx/autocompose"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to config file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")

	flag.Parse()

	// stdout carries the msgpack stream in server mode
	log.SetOutput(os.Stderr)

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, usedPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(usedPath))

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		candidates := cli.NewCandidates(appConfig.CLI.Emoji, appConfig.CLI.Streams, appConfig.CLI.Users)
		inputHandler := cli.NewInputHandler(candidates, appConfig.CLI.CursorMarker)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(appConfig)
	showStartupInfo(usedPath)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ autocompose ] Accepts chat completions in place")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(configPath string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	fmt.Fprintln(os.Stderr, "=============")
	fmt.Fprintln(os.Stderr, " autocompose ")
	fmt.Fprintln(os.Stderr, "=============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("config: ( %s )", config.GetActiveConfigPath(configPath))
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "=============")
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
