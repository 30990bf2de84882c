package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewWhoamiCmd показывает идентичность из сохранённого токена.
//
// Проверку выполняет сервер (GET /api/auth/me), так что просроченный
// токен даёт ошибку 401.
func NewWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Показать, кому принадлежит сохранённый токен",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.requireLogin()
			if err != nil {
				return err
			}

			me, err := app.Client().Me(token)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "id=%s\nemail=%s\nexpires_at=%s\n",
				me.User.ID, me.User.Email, me.ExpiresAt.Format(time.RFC3339))
			return nil
		},
	}
}
