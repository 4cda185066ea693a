package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/epicurean/epicurean/app/routes"
	"github.com/epicurean/epicurean/internal/server"
	"github.com/epicurean/epicurean/pkg/kvstore"
	"github.com/epicurean/epicurean/pkg/router"
)

// epicurean serve: start the HTTP and gRPC servers.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// epicurean route:list: print all registered named routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := router.New()
		routes.RegisterAPI(r, kvstore.NewMemoryStore())

		table := r.Routes()
		if len(table) == 0 {
			fmt.Println("No named routes registered.")
			return nil
		}

		names := make([]string, 0, len(table))
		for name := range table {
			names = append(names, name)
		}
		sort.Strings(names)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tPATH")
		fmt.Fprintln(w, "----\t----")
		for _, name := range names {
			fmt.Fprintf(w, "%s\t%s\n", name, table[name])
		}
		return w.Flush()
	},
}
