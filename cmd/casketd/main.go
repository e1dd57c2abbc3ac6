package main

import (
	"flag"
	"fmt"
	"os"
)

// version is overridden at build time with -ldflags.
var version = "dev"

func main() {
	var (
		configPath  = flag.String("config", "casket.toml", "path to the TOML config file")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("casketd %s\n", version)
		return
	}

	if err := runServer(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "casketd: %v\n", err)
		os.Exit(1)
	}
}
