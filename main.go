/*
Colony renders a wandering agent population with WebGPU.
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/colony/engine"
	"github.com/spaghettifunk/colony/engine/core"
	"github.com/spaghettifunk/colony/testbed"
)

func main() {
	configPath := flag.String("config", "assets/config/colony.toml", "path to the colony configuration file")
	flag.Parse()

	config, err := engine.LoadConfig(*configPath)
	if err != nil {
		core.LogFatal("invalid configuration: %s", err)
	}

	game := testbed.NewColonyGame(&config)

	e, err := engine.New(game.Game)
	if err != nil {
		core.LogFatal("failed to create the engine: %s", err)
	}

	if err := e.Initialize(); err != nil {
		core.LogError("failed to initialize the engine: %s", err)
		_ = e.Shutdown()
		os.Exit(1)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	// teardown stays on the main thread, the handler only asks the loop to stop
	go func() {
		<-sigCh
		core.LogInfo("signal received, quitting")
		e.RequestQuit()
	}()

	runErr := e.Run()
	if err := e.Shutdown(); err != nil {
		core.LogError("shutdown failed: %s", err)
	}
	if runErr != nil {
		os.Exit(1)
	}
}
