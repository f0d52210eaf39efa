package main

import (
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"skink/internal"
)

const version = "0.1.0"

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	args := flag.Args()
	if len(args) == 0 {
		internal.StartREPL(os.Stdout, version)
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: skink [script.sk]")
		os.Exit(64)
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatal(err)
	}

	result := internal.Run(string(source), internal.NewEnvironment())
	if !result.OK() {
		for _, msg := range result.Errors {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(1)
	}
}
