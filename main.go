package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/mrlokans/reader/internal/auth"
	"github.com/mrlokans/reader/internal/config"
	"github.com/mrlokans/reader/internal/database"
	"github.com/mrlokans/reader/internal/entities"
	"github.com/mrlokans/reader/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// Optional .env for local development; missing file is fine.
	_ = godotenv.Load()

	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "create-user":
		if err := runCreateUser(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "version":
		fmt.Printf("reader %s (%s)\n", Version, Commit)

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runCreateUser(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)
	username := fs.String("username", "", "username for the new account")
	email := fs.String("email", "", "email for the new account")
	password := fs.String("password", "", "password for the new account")
	admin := fs.Bool("admin", false, "grant the admin role")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *email == "" || *password == "" {
		return fmt.Errorf("username, email and password are required")
	}

	cfg := config.NewConfig()
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	role := entities.UserRoleReader
	if *admin {
		role = entities.UserRoleAdmin
	}

	service := auth.NewService(db.DB, cfg.Auth)
	user, err := service.CreateUser(*username, *email, *password, role)
	if err != nil {
		return err
	}

	fmt.Printf("Created user %s (id %d)\n", user.Username, user.ID)
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve        Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  create-user  Create a local account\n")
	fmt.Fprintf(os.Stderr, "  version      Print build information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
