package main

import (
	"awardeda/internal/cli"
	_ "awardeda/internal/clean/steps"
)

// Populated at build time, e.g. -ldflags "-X main.version=v1.0.0".
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cli.SetBuildInfo(version, commit, date)
	cli.Execute()
}
