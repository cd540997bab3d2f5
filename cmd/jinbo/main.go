package main

import (
	"os"

	"github.com/Prateesh-Sulikeri/JinBo/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
