package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/picogrid/coinbase-client/cmd/coinbase-client/cmd"
	"github.com/picogrid/coinbase-client/pkg/logger"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

func reportError(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "%s Error: %v\n", logger.IconError, err)
}
