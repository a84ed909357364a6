package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/reactiverse/core/cmd/api/commands"
)

// @title Reactiverse API
// @version 1.0
// @description Marketplace API for publishing and browsing UI component designs

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "reactiverse",
		Short: "Reactiverse API Server",
		Long:  `Reactiverse is a marketplace where designers publish UI components and visitors browse them.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewStoreCommand())
	rootCmd.AddCommand(commands.NewAdminCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
