package main

import (
	"fmt"
	"os"

	cli "github.com/spf13/pflag"

	"jarvis/internal/ipc"
)

func main() {
	socket := cli.StringP("socket", "s", ipc.DefaultSocketPath, "Control socket path")
	cli.Parse()

	cmd := ipc.CmdTrigger
	if cli.NArg() > 0 {
		cmd = cli.Arg(0)
	}

	if err := ipc.SendCommand(*socket, cmd); err != nil {
		fmt.Println("jarvis not running:", err)
		os.Exit(1)
	}
}
