package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"crowdfund.backend/internal/config"
	"crowdfund.backend/internal/domain/entities"
	domainerrors "crowdfund.backend/internal/domain/errors"
	domainrepo "crowdfund.backend/internal/domain/repositories"
	"crowdfund.backend/internal/infrastructure/repositories"
	"crowdfund.backend/pkg/crypto"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const passwordEnv = "ADMIN_PASSWORD"

var openCreateAdminDB = func(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}), &gorm.Config{PrepareStmt: false})
}

var openCreateAdminSQLDB = func(db *gorm.DB) (io.Closer, error) {
	return db.DB()
}

type createAdminDeps struct {
	loadEnv func() error
	loadCfg func() (*config.Config, error)
	prepare func(cfg *config.Config) (domainrepo.UserRepository, io.Closer, error)
	getenv  func(string) string
	out     io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultCreateAdminDeps() createAdminDeps {
	return createAdminDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (domainrepo.UserRepository, io.Closer, error) {
			db, err := openCreateAdminDB(cfg.Database.URL())
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}
			sqlDB, err := openCreateAdminSQLDB(db)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}
			return repositories.NewUserRepository(db), sqlDB, nil
		},
		getenv: os.Getenv,
		out:    os.Stdout,
	}
}

type adminInput struct {
	email     string
	password  string
	firstName string
	lastName  string
}

func parseAdminInput(args []string, getenv func(string) string) (*adminInput, error) {
	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	email := fs.String("email", "", "admin email (required)")
	password := fs.String("password", "", "admin password, defaults to $"+passwordEnv)
	firstName := fs.String("first-name", "Platform", "first name")
	lastName := fs.String("last-name", "Admin", "last name")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	in := &adminInput{
		email:     strings.ToLower(strings.TrimSpace(*email)),
		password:  *password,
		firstName: strings.TrimSpace(*firstName),
		lastName:  strings.TrimSpace(*lastName),
	}
	if in.password == "" {
		in.password = getenv(passwordEnv)
	}
	if in.email == "" {
		return nil, errors.New("--email is required")
	}
	if in.password == "" {
		return nil, fmt.Errorf("--password or %s is required", passwordEnv)
	}
	if problems := crypto.PasswordViolations(in.password); len(problems) > 0 {
		return nil, fmt.Errorf("password %s", strings.Join(problems, ", "))
	}
	return in, nil
}

// runCreateAdmin provisions a verified, active admin account. Admins cannot self-register.
func runCreateAdmin(args []string, deps createAdminDeps) error {
	def := defaultCreateAdminDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.prepare == nil {
		deps.prepare = def.prepare
	}
	if deps.getenv == nil {
		deps.getenv = def.getenv
	}
	if deps.out == nil {
		deps.out = def.out
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	in, err := parseAdminInput(args, deps.getenv)
	if err != nil {
		return err
	}

	cfg, err := deps.loadCfg()
	if err != nil {
		return err
	}
	users, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	ctx := context.Background()
	if existing, err := users.GetByEmail(ctx, in.email); err == nil {
		return fmt.Errorf("user %s already exists (role=%s)", in.email, existing.Role)
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return fmt.Errorf("failed to look up %s: %w", in.email, err)
	}

	hash, err := crypto.HashPassword(in.password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Email:         in.email,
		PasswordHash:  hash,
		FirstName:     in.firstName,
		LastName:      in.lastName,
		Role:          entities.UserRoleAdmin,
		EmailVerified: true,
		IsActive:      true,
	}
	if err := users.Create(ctx, user); err != nil {
		return fmt.Errorf("failed creating admin: %w", err)
	}

	_, _ = fmt.Fprintln(deps.out, "Created ADMIN user")
	_, _ = fmt.Fprintf(deps.out, "user_id=%s\n", user.ID.String())
	_, _ = fmt.Fprintf(deps.out, "email=%s\n", user.Email)
	return nil
}

func main() {
	if err := runCreateAdmin(os.Args[1:], defaultCreateAdminDeps()); err != nil {
		log.Fatal(err)
	}
}
