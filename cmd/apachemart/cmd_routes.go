package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"apachemart/config"
	"apachemart/internal/server"
	"apachemart/pkg/database"
)

// apachemart route:list
var routeListCmd = &cobra.Command{
	Use:     "route:list",
	Aliases: []string{"routes"},
	Short:   "List the named API routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		// Build the router without touching the database.
		r := server.NewRouter(database.NewManager())
		routes := r.Routes()

		names := make([]string, 0, len(routes))
		for name := range routes {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Printf("%-28s %s\n", "NAME", "PATH")
		for _, name := range names {
			fmt.Printf("%-28s %s\n", name, routes[name])
		}
		return nil
	},
}
