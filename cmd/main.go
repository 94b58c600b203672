package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/clubhub-dev/clubhub/cmd/app"
	"github.com/clubhub-dev/clubhub/internal/adapters/config"
	setupHTTP "github.com/clubhub-dev/clubhub/internal/adapters/controller/http/setup"
	"github.com/clubhub-dev/clubhub/internal/adapters/database/postgres"
	"github.com/clubhub-dev/clubhub/internal/domain/entity"
	"github.com/clubhub-dev/clubhub/internal/domain/service"
	"github.com/clubhub-dev/clubhub/pkg/logger"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	_ "time/tzdata"
)

func main() {
	cliApp := &cli.App{
		Name:  "clubhub",
		Usage: "club and community posts server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the yaml configuration file",
				EnvVars: []string{"CLUBHUB_CONFIG"},
			},
		},
		Before: func(c *cli.Context) error {
			return config.Load(c.String("config"))
		},
		After: func(*cli.Context) error {
			logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			userCommand(),
			clubCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP server",
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Get(ctx)
			if err != nil {
				return err
			}
			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			handler, err := setupHTTP.Setup(a)
			if err != nil {
				return err
			}
			return a.Start(ctx, handler)
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "create or update the database schema",
		Action: func(*cli.Context) error {
			db, err := config.OpenDatabase()
			if err != nil {
				return err
			}
			defer closeDB(db)
			return config.Migrate(db)
		},
	}
}

func userCommand() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "manage accounts",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "create an account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"CLUBHUB_USER_PASSWORD"}},
					&cli.IntFlag{Name: "role", Value: int(entity.RoleRegular), Usage: "0 regular, 1 privileged"},
				},
				Action: func(c *cli.Context) error {
					return withDatabase(c.Context, func(ctx context.Context, db *gorm.DB) error {
						user, err := service.NewUserService(postgres.NewUserStorage(db)).
							Create(ctx, c.String("username"), c.String("password"), entity.Role(c.Int("role")))
						if err != nil {
							return err
						}
						fmt.Printf("Created user %s (id %d, role %d)\n", user.Username, user.ID, user.Role)
						return nil
					})
				},
			},
		},
	}
}

func clubCommand() *cli.Command {
	return &cli.Command{
		Name:  "club",
		Usage: "manage clubs",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "create a club",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Required: true},
				},
				Action: func(c *cli.Context) error {
					return withDatabase(c.Context, func(ctx context.Context, db *gorm.DB) error {
						club, err := service.NewClubService(postgres.NewClubStorage(db)).Create(ctx, c.String("title"))
						if err != nil {
							return err
						}
						fmt.Printf("Created club %q (id %d)\n", club.Title, club.ID)
						return nil
					})
				},
			},
		},
	}
}

func withDatabase(ctx context.Context, fn func(ctx context.Context, db *gorm.DB) error) error {
	db, err := config.OpenDatabase()
	if err != nil {
		return err
	}
	defer closeDB(db)
	if err = config.Migrate(db); err != nil {
		return err
	}
	return fn(ctx, db)
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
