package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/projecthub/api/internal/core/domain"
	"github.com/projecthub/api/internal/infrastructure/db/mongo"
)

var promoteCmd = &cobra.Command{
	Use:   "promote",
	Short: "Set the role of an existing user",
	Long: `Set the role of an existing user directly in the database.

Use it to bootstrap the first admin account; afterwards admins can manage
roles through PUT /api/admin/assign-role.`,
	Args: cobra.NoArgs,
	RunE: runPromote,
}

var promoteOpts struct {
	email string
	role  string
}

func init() {
	rootCmd.AddCommand(promoteCmd)
	registerPromoteFlags(promoteCmd.Flags())
	_ = promoteCmd.MarkFlagRequired("email")
}

func registerPromoteFlags(flags *pflag.FlagSet) {
	flags.StringVar(&promoteOpts.email, "email", "", "email of the user to update (required)")
	flags.StringVar(&promoteOpts.role, "role", string(domain.RoleAdmin), "role to assign: user or admin")
}

func runPromote(cmd *cobra.Command, _ []string) error {
	role := domain.Role(strings.ToLower(strings.TrimSpace(promoteOpts.role)))
	if !role.Valid() {
		return fmt.Errorf("%w: role must be user or admin", domain.ErrInvalidInput)
	}

	ctx := cmd.Context()
	cfg, log, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	client, db, err := mongo.Connect(ctx, mongoConfig(cfg))
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	users := mongo.NewUserRepository(db)
	user, err := users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(promoteOpts.email)))
	if err != nil {
		return err
	}
	if user.Role == role {
		log.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("role unchanged")
		return nil
	}

	user.Role = role
	user.UpdatedAt = time.Now().UTC()
	if err := users.Update(ctx, user); err != nil {
		return err
	}
	log.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("role updated")
	return nil
}
