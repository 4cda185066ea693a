// Command epicurean is the project CLI: run the server, seed the menu,
// inspect routes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "epicurean",
	Short: "Epicurean restaurant ordering backend",
	Long:  "Epicurean serves the restaurant ordering API: menu, carts, checkout, order tracking, and admin fulfilment.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)
	rootCmd.AddCommand(seedCmd)
}
