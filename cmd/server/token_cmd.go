package main

import (
	"fmt"

	"werkshift/internal/auth"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// newTokenCmd mints a bearer token for local testing. Identity is owned by
// an external provider in production.
func newTokenCmd(a *app) *cobra.Command {
	var (
		role    string
		actorID string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed bearer token for an actor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := auth.Role(role)
			if !r.Valid() {
				return fmt.Errorf("invalid --role %q: want %s or %s", role, auth.RoleMaker, auth.RoleWerker)
			}
			id := uuid.New()
			if actorID != "" {
				parsed, err := uuid.Parse(actorID)
				if err != nil {
					return fmt.Errorf("invalid --id: %w", err)
				}
				id = parsed
			}

			token, err := auth.NewTokenIssuer(a.cfg.JWTSecret, a.cfg.JWTExpiry()).Generate(id, r)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "actor_id=%s\n%s\n", id, token)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", string(auth.RoleMaker), "actor role: maker or werker")
	cmd.Flags().StringVar(&actorID, "id", "", "actor id (random when empty)")
	return cmd
}
