package main

import (
	"github.com/poddiag/poddiag/pkg/cli"
)

func main() {
	cli.Execute()
}
