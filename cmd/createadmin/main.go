// Command createadmin seeds an admin account. Run once per admin:
//
//	go run ./cmd/createadmin -username admin -password <password>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/snapdraw/raffle-api/internal/config"
	"github.com/snapdraw/raffle-api/internal/db"
	"github.com/snapdraw/raffle-api/internal/pkg/password"
	"github.com/snapdraw/raffle-api/internal/repository/dao"
)

const bcryptCost = 12

func main() {
	var (
		username   = flag.String("username", "", "admin username")
		pw         = flag.String("password", "", "admin password")
		configPath = flag.String("config", "./cmd/app/config.yml", "path to config file")
	)
	flag.Parse()

	if err := run(*username, *pw, *configPath); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(username, pw, configPath string) error {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if err := password.Validate(pw); err != nil {
		return err
	}

	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config.Load -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("open database -> %w", err)
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("dao.InitTables -> %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(pw), bcryptCost)
	if err != nil {
		return fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adminDAO := dao.NewAdminDAO(postgresDB)
	if err = adminDAO.Insert(ctx, dao.Admin{
		Username: username,
		Password: string(hashed),
		IsActive: true,
	}); err != nil {
		return fmt.Errorf("adminDAO.Insert -> %w", err)
	}

	fmt.Printf("admin %q created\n", username)

	return nil
}
