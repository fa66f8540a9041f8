// menu-ordering serves the restaurant menu, cart, orders and reviews over
// HTTP and exposes the same data through admin subcommands.
//
// Usage:
//
//	menu-ordering serve [--config=<path>]
//	menu-ordering orders list|status|delete|clear
//	menu-ordering reviews list|add
//	menu-ordering catalog show|reset
//	menu-ordering migrate
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
