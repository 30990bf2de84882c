package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLoginCmd создаёт CLI-команду входа пользователя.
//
// Команда получает access токен и сохраняет его в локальный конфиг
// вместе с адресом сервера. Токен действует 7 дней, refresh нет.
//
// Пример использования:
//
//	qrkeeper login --email ivan@example.com
func NewLoginCmd(app *App) *cobra.Command {
	var email string
	var pw passwordFlags

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Логин пользователя (получить access токен)",
		Long: `Логин пользователя.

Пример:
  qrkeeper login --email ivan@example.com
  echo "$PASS" | qrkeeper login --email ivan@example.com --password-stdin
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := pw.get(cmd)
			if err != nil {
				return err
			}

			resp, err := app.Client().Login(email, password)
			if err != nil {
				return err
			}

			if err := app.storeSession(resp); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "login ok as %s (token saved)\n", resp.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email for login")
	pw.bind(cmd)
	cmd.MarkFlagRequired("email")

	return cmd
}
