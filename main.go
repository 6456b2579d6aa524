package main

import (
	"github.com/okian/compas/cmd"
)

func main() {
	cmd.Execute()
}
