package main

import (
	"os"

	"github.com/solatis/audiencekeeper/cmd/audiencekeeper/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
