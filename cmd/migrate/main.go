package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"hms/internal/auth"
	authrepo "hms/internal/auth/repository"
	authservice "hms/internal/auth/service"
	authvalidator "hms/internal/auth/validator"
	contentrepo "hms/internal/content/repository"
	contentservice "hms/internal/content/service"
	contentvalidator "hms/internal/content/validator"
	inventoryrepo "hms/internal/inventory/repository"
	inventoryservice "hms/internal/inventory/service"
	inventoryvalidator "hms/internal/inventory/validator"
	mongoMigration "hms/internal/migrations/mongo"
	"hms/internal/migrations/seed"
	roomsrepo "hms/internal/rooms/repository"
	roomsservice "hms/internal/rooms/service"
	roomsvalidator "hms/internal/rooms/validator"
	"hms/pkg/config"
	"hms/pkg/model"

	"github.com/spf13/cobra"
)

const (
	JobName    = "mongo-migration"
	jobTimeout = 120 * time.Second
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Hotel database migrations and seed data",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		upCmd(),
		seedCmd(),
		createAdminCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withMongo runs fn against a connected config and always disconnects.
func withMongo(fn func(ctx context.Context, cfg *config.Config) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	return fn(ctx, cfg)
}

func upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Create collections, schema validators and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMongo(func(ctx context.Context, cfg *config.Config) error {
				cfg.Log.Info("Starting Mongo migration job")
				return mongoMigration.RunMigration(ctx, cfg.Client.Mongo.Database(cfg.MongoDatabaseName), cfg.Log)
			})
		},
	}
}

func seedCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the default admin and sample room types on an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMongo(func(ctx context.Context, cfg *config.Config) error {
				seeder := newSeeder(cfg)

				if _, err := seeder.Admin(ctx, &model.RegisterRequest{
					Email:    email,
					Password: password,
					Name:     seed.DefaultAdminName,
					Role:     model.RoleAdmin,
				}); err != nil {
					return fmt.Errorf("failed to seed admin: %w", err)
				}

				rooms, err := seeder.Catalog(ctx)
				if err != nil {
					return fmt.Errorf("failed to seed catalog: %w", err)
				}
				cfg.Log.Info("Seed completed", "room_types", rooms)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "admin-email", seed.DefaultAdminEmail, "default admin email")
	cmd.Flags().StringVar(&password, "admin-password", "", "default admin password (min 8 characters)")
	_ = cmd.MarkFlagRequired("admin-password")
	return cmd
}

func createAdminCmd() *cobra.Command {
	var req model.RegisterRequest

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Register an admin or superadmin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMongo(func(ctx context.Context, cfg *config.Config) error {
				created, err := newSeeder(cfg).Admin(ctx, &req)
				if err != nil {
					return fmt.Errorf("failed to create admin: %w", err)
				}
				if !created {
					return fmt.Errorf("user %s already exists", req.Email)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password (min 8 characters)")
	cmd.Flags().StringVar(&req.Name, "name", seed.DefaultAdminName, "display name")
	cmd.Flags().StringVar(&req.Role, "role", model.RoleSuperAdmin, "admin or superadmin")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newSeeder(cfg *config.Config) *seed.Seeder {
	roomRepo := roomsrepo.NewMongoRoomTypeRepository(cfg)

	authService := authservice.NewAuthService(
		authrepo.NewMongoUserRepository(cfg),
		authrepo.NewMongoPasswordResetRepository(cfg),
		auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		nil,
		authvalidator.NewUserValidator(cfg.Log),
		cfg,
	)

	return seed.NewSeeder(
		authService,
		roomsservice.NewRoomTypeService(roomRepo, roomsvalidator.NewRoomTypeValidator(cfg.Log), cfg),
		inventoryservice.NewInventoryService(
			inventoryrepo.NewMongoInventoryRepository(cfg),
			roomRepo,
			inventoryvalidator.NewInventoryValidator(cfg.Log),
			cfg,
		),
		contentservice.NewContentService(
			contentrepo.NewMongoContentRepository(cfg),
			contentvalidator.NewContentValidator(cfg.Log),
			cfg,
		),
		cfg.Log,
	)
}
