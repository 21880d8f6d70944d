package main

import (
	"github.com/roster-manager/backend/internal/cli"
	"github.com/roster-manager/backend/internal/logger"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	cli.SetVersion(Version, BuildTime)
	if err := cli.Execute(); err != nil {
		logger.New("error").Fatal("roster-manager exited", "error", err)
	}
}
