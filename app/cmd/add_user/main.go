package main

import (
	"flag"
	"os"

	"astrocoffee/app/config"
	"astrocoffee/app/database"
	"astrocoffee/app/models"

	"github.com/fatih/color"
)

func main() {
	email := flag.String("email", "", "email address for the new account")
	name := flag.String("name", "", "display name for the new account")
	password := flag.String("password", "", "password for the new account")
	flag.Parse()

	if *email == "" || *name == "" || *password == "" {
		color.Red("Usage: add_user -email coffee@astro.edu -name \"Coffee Organizer\" -password secret")
		os.Exit(1)
	}

	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		color.Red("Failed to run migrations: %v", err)
		os.Exit(1)
	}

	user := &models.User{
		Email:    *email,
		Name:     *name,
		Password: *password,
	}

	if err := database.CreateUser(db, user); err != nil {
		color.Red("Error creating user: %v", err)
		os.Exit(1)
	}

	color.Green("User created successfully: %s (%s)", user.Name, user.Email)
}
