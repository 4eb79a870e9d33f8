// File: cmd/logload/main.go
// Package main
// Logging-client harness: runs the four canonical TCP/UDP sessions
// against a request/response logging server and shuts them down with
// the two-phase bounded stop.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package main

import (
	"go.uber.org/zap"

	"github.com/momentics/logload/facade"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	harness, err := facade.New(facade.DefaultConfig(), logger)
	if err != nil {
		logger.Fatal("failed to create harness", zap.Error(err))
	}
	if err := harness.Start(); err != nil {
		logger.Fatal("failed to start harness", zap.Error(err))
	}

	// Session-level I/O failures are already logged by the harness
	// and never change the exit code.
	if err := harness.Stop(); err != nil {
		logger.Warn("harness stopped with session failures", zap.Error(err))
	}
}
