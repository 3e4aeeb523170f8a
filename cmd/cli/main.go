package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/israil64/laptop-galaxy/internal/config"
	"github.com/israil64/laptop-galaxy/internal/models"
	"github.com/israil64/laptop-galaxy/internal/storage"
)

const usage = "expected 'add-user', 'approve-review' or 'list-messages' subcommand"

func main() {
	addUserCmd := flag.NewFlagSet("add-user", flag.ExitOnError)
	username := addUserCmd.String("username", "", "Username for the new user")
	email := addUserCmd.String("email", "", "Email for the new user")
	password := addUserCmd.String("password", "", "Password for the new user")
	role := addUserCmd.String("role", "user", "Role: user or admin")

	approveCmd := flag.NewFlagSet("approve-review", flag.ExitOnError)
	reviewID := approveCmd.String("id", "", "Review ID to approve")

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-user":
		addUserCmd.Parse(os.Args[2:])
		if *username == "" || *email == "" || *password == "" {
			fmt.Println("username, email and password are required")
			addUserCmd.PrintDefaults()
			os.Exit(1)
		}
		createUser(*username, *email, *password, *role)
	case "approve-review":
		approveCmd.Parse(os.Args[2:])
		if *reviewID == "" {
			fmt.Println("id is required")
			approveCmd.PrintDefaults()
			os.Exit(1)
		}
		approveReview(*reviewID)
	case "list-messages":
		listMessages()
	default:
		fmt.Println(usage)
		os.Exit(1)
	}
}

func openStore() storage.Store {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	var store storage.Store
	switch cfg.Backend {
	case "mongo":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		store, err = storage.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDB)
	case "sqlite":
		store, err = storage.NewSQLiteStore(cfg.SQLitePath)
	default:
		store, err = storage.NewFileStore(cfg.DataDir)
	}
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	return store
}

// createUser seeds an account directly into storage; the only way to get an
// admin role, since signup always assigns "user".
func createUser(username, email, password, role string) {
	if role != "user" && role != "admin" {
		log.Fatalf("Invalid role %q, want user or admin", role)
	}

	store := openStore()
	ctx := context.Background()
	defer store.Close(ctx)

	existing, err := store.Users().FindByEmail(ctx, email)
	if err != nil {
		log.Fatalf("Failed to look up user: %v", err)
	}
	if existing != nil {
		log.Fatalf("A user with email %s already exists", email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		Username:  username,
		Email:     email,
		Password:  string(hashedPassword),
		Role:      role,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	if _, err := store.Users().Create(ctx, user); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User '%s' (%s) created successfully.\n", username, role)
}

func approveReview(id string) {
	store := openStore()
	ctx := context.Background()
	defer store.Close(ctx)

	approved := true
	if _, err := store.Reviews().Update(ctx, id, models.ReviewPatch{Approved: &approved}); err != nil {
		log.Fatalf("Failed to approve review: %v", err)
	}
	fmt.Printf("Review %s approved.\n", id)
}

func listMessages() {
	store := openStore()
	ctx := context.Background()
	defer store.Close(ctx)

	messages, err := store.Messages().List(ctx)
	if err != nil {
		log.Fatalf("Failed to list messages: %v", err)
	}
	if len(messages) == 0 {
		fmt.Println("No messages.")
		return
	}
	for _, m := range messages {
		fmt.Printf("[%s] %s <%s>: %s\n", m.Date, m.Name, m.Email, m.Message)
	}
}
