package main

import (
	"os"

	"github.com/KPSTVLD/warrant-articles-bot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
