package main

import (
	"os"

	"tamweel-backend/cmd/portfolioctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
