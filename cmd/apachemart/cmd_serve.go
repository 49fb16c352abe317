package main

import (
	"github.com/spf13/cobra"

	"apachemart/internal/server"
)

// apachemart serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"start", "run"},
	Short:   "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}
