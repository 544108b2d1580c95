// Package main provides the control client: it sends one command token
// to the daemon's socket and exits.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"

	"github.com/dkrasnov/melodeon/internal/infra/ipc"
)

var (
	app    = kingpin.New("melodeonctl", "Control client for the melodeon playback daemon")
	socket = app.Flag("socket", "Command socket path").Default(ipc.DefaultSocketPath).String()

	nextCmd  = app.Command("next", "Skip to the next track")
	prevCmd  = app.Command("prev", "Go back to the previous track")
	pauseCmd = app.Command("pause", "Toggle pause")
	stopCmd  = app.Command("stop", "Stop the daemon")
	volUpCmd = app.Command("volume-up", "Raise the volume one step")
	volDnCmd = app.Command("volume-down", "Lower the volume one step")
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	var token string
	switch command {
	case nextCmd.FullCommand():
		token = "next"
	case prevCmd.FullCommand():
		token = "prev"
	case pauseCmd.FullCommand():
		token = "pause"
	case stopCmd.FullCommand():
		token = "stop"
	case volUpCmd.FullCommand():
		token = "volume_up"
	case volDnCmd.FullCommand():
		token = "volume_down"
	}

	if err := ipc.Send(*socket, token); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
