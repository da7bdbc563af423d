package main

import (
	"log"
	"os"

	"go.creack.net/pemdas/cmd/pemdas/cmd"
)

func main() {
	log.SetFlags(0)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
