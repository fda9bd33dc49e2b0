// ABOUTME: Entry point for the ventas-admin CLI
// ABOUTME: Terminal front-end for the retail sales-management backend

package main

import (
	"fmt"
	"os"

	"github.com/nmorales/ventas-admin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
