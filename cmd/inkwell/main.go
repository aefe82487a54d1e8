package main

import (
	"fmt"
	"os"

	"github.com/iw2rmb/inkwell/internal/cmd"
	"github.com/iw2rmb/inkwell/internal/log"
)

func main() {
	err := cmd.Root().Execute()
	log.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, "inkwell:", err)
		os.Exit(1)
	}
}
