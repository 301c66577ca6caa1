package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yashodhanketkar/citenote/internal/config"
	"github.com/yashodhanketkar/citenote/internal/database"
	"github.com/yashodhanketkar/citenote/internal/logging"
	"github.com/yashodhanketkar/citenote/internal/security"
	"github.com/yashodhanketkar/citenote/internal/services"
	"github.com/yashodhanketkar/citenote/internal/store"
	"go.uber.org/zap"
)

const confirmToken = "reset-citenote"

var (
	forceReset bool
	confirm    string
)

var rootCmd = &cobra.Command{
	Use:   "citenote-admin",
	Short: "Administer the citenote database",
	Long: `Administrative tasks for citenote.

Available subcommands:
  init-db      - Create the schema, optionally dropping every table first
  create-admin - Create the admin account with a password read from stdin`,
	SilenceUsage: true,
}

// initDBCmd migrates the schema, or rebuilds it with --force
var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create or rebuild the schema",
	Long: `Create the citenote tables.

With --force every table is dropped and recreated. This deletes all data, so
--confirm ` + confirmToken + ` must also be given.`,
	RunE: runInitDB,
}

// createAdminCmd bootstraps the admin account
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create the admin account",
	Long:  `Create the "admin" account. The password is read from the first line of stdin.`,
	RunE:  runCreateAdmin,
}

func init() {
	initDBCmd.Flags().BoolVar(&forceReset, "force", false, "drop every table before migrating")
	initDBCmd.Flags().StringVar(&confirm, "confirm", "", "confirmation token required by --force")
	rootCmd.AddCommand(initDBCmd, createAdminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}

func runInitDB(cmd *cobra.Command, _ []string) error {
	if forceReset && confirm != confirmToken {
		return fmt.Errorf("--force deletes all data; pass --confirm %s to proceed", confirmToken)
	}

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	db, err := database.Connect(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if forceReset {
		if err := database.Reset(db); err != nil {
			return fmt.Errorf("failed to reset schema: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Schema rebuilt")
		return nil
	}
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Schema up to date")
	return nil
}

func readPassword(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("no password on stdin")
	}
	return password, nil
}

func runCreateAdmin(cmd *cobra.Command, _ []string) error {
	password, err := readPassword(cmd.InOrStdin())
	if err != nil {
		return err
	}

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	db, err := database.ConnectUser(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	auth := services.NewAuthService(store.New(db, cfg.StoreTimeout),
		security.NewBcryptHasher(cfg.PasswordPepper, cfg.BcryptCost),
		services.NewRoleValidator(cfg.AllowedRoles),
		log)
	if err := auth.CreateAdmin(context.Background(), password); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created user %s\n", services.AdminUsername)
	return nil
}
