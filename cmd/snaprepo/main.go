package main

import (
	"fmt"
	"os"

	"github.com/scharc/snaprepo/internal/cli"
	"github.com/scharc/snaprepo/internal/utils"
)

// main is the entry point for the snaprepo command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger()
	if loggerInitializationError != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", loggerInitializationError)
		os.Exit(1)
	}
	defer loggerInstance.Sync()
	if executionError := cli.Execute(loggerInstance); executionError != nil {
		loggerInstance.Error(executionError.Error())
		os.Exit(1)
	}
}
