package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/internal/cli"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "formbuilder: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	root := cli.New(cli.WithLogger(logger))
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "formbuilder: %v\n", err)
		os.Exit(1)
	}
}
