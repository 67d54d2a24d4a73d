// Command mavi is a terminal Q&A companion with OS-keyring credential storage.
package main

import (
	"fmt"
	"os"

	"mavi/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
