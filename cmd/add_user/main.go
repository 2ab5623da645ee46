package main

import (
	"flag"
	"fmt"
	"strings"

	"scolapay/app/config"
	"scolapay/app/database"
	"scolapay/app/models"
)

func main() {
	email := flag.String("email", "", "user email")
	password := flag.String("password", "", "initial password")
	firstName := flag.String("first-name", "", "first name")
	lastName := flag.String("last-name", "", "last name")
	roles := flag.String("roles", "admin", "comma-separated roles (admin,secretary,accountant,guard)")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Println("Usage: add_user -email <email> -password <password> [-first-name X] [-last-name Y] [-roles admin,guard]")
		return
	}

	cfg := config.Load()
	cfg.InitDB()
	defer cfg.DB.Close()

	if err := database.RunMigrations(cfg.DB); err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		return
	}

	user := &models.User{
		Email:     *email,
		Password:  *password,
		FirstName: *firstName,
		LastName:  *lastName,
	}

	roleNames := strings.Split(*roles, ",")
	for i := range roleNames {
		roleNames[i] = strings.TrimSpace(roleNames[i])
	}

	if err := database.CreateUser(cfg.DB, user, roleNames); err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		return
	}

	fmt.Printf("User created successfully: %s %s (%s) roles=%s\n",
		user.FirstName, user.LastName, user.Email, *roles)
}
