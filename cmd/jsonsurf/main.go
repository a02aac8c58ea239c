// Command jsonsurf streams a JSON document through a YAML manifest of
// JSONPath bindings, writing or counting each match as it completes,
// without ever holding the whole document in memory.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, exitResult := Parse(os.Args)
	if exitResult != nil {
		exitResult.Print()
		return exitResult.ExitCode
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if cfg.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := runStream(cfg, log); err != nil {
		log.WithError(err).Error("jsonsurf failed")
		return 1
	}
	return 0
}
