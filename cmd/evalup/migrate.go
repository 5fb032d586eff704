package main

import (
	"github.com/spf13/cobra"

	"github.com/zelenmun/EvalUp/internal/catalog"
	"github.com/zelenmun/EvalUp/internal/config"
	"github.com/zelenmun/EvalUp/internal/database"
	"github.com/zelenmun/EvalUp/internal/user"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables, seed catalogs and the optional admin account",
		RunE:  runMigrate,
	}
	f := cmd.Flags()
	f.String("admin-email", "", "Staff account to create when missing")
	f.String("admin-password", "", "Password for the staff account (or set EVALUP_ADMIN_PASSWORD)")
	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	s := config.Load(viperForCmd(cmd))
	if err := connect(cmd, s); err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := database.Migrate(ctx, config.DB); err != nil {
		return err
	}

	if s.AdminEmail == "" || s.AdminPassword == "" {
		return nil
	}
	svc := user.NewService(config.DB, user.NewRepository(config.DB), catalog.NewRepository(config.DB), s.JWTTTL)
	admin, err := svc.EnsureAdmin(ctx, s.AdminEmail, s.AdminPassword)
	if err != nil {
		return err
	}
	config.Logger.WithField("username", admin.Username).Info("Admin account ready")
	return nil
}
