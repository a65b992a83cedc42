package main

import (
	"os"

	"github.com/spigell/company-scout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
