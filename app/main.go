package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/Stovent/m68000"
	"github.com/Stovent/m68000/host"
	"github.com/beevik/term"
)

var model string

func init() {
	flag.StringVar(&model, "model", "mc68000", "CPU model to emulate (mc68000 or scc68070)")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: m68000 [options] [script] ..\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	var m m68000.Model
	switch model {
	case "mc68000", "68000":
		m = m68000.MC68000
	case "scc68070", "68070":
		m = m68000.SCC68070
	default:
		fmt.Fprintf(os.Stderr, "Unknown CPU model '%s'.\n", model)
		os.Exit(1)
	}

	h := host.New(m)

	// Run commands contained in command-line files.
	for _, filename := range flag.Args() {
		file, err := os.Open(filename)
		if err != nil {
			exitOnError(err)
		}
		h.RunCommands(file, os.Stdout, false)
		file.Close()
	}

	// Break on Ctrl-C.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go handleInterrupt(h, c)

	// Run commands interactively.
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	h.RunCommands(os.Stdin, os.Stdout, interactive)
}

func handleInterrupt(h *host.Host, c chan os.Signal) {
	for {
		<-c
		h.Break()
	}
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
