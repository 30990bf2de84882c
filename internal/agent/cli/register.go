package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/agent/config"
	shared "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/models"
)

// NewRegisterCmd создаёт CLI-команду регистрации нового пользователя.
//
// Сервер сразу выдаёт access токен, поэтому после регистрации отдельный
// login не нужен: токен сохраняется в локальный конфиг.
//
// Пример использования:
//
//	qrkeeper register --username ivan --email ivan@example.com
func NewRegisterCmd(app *App) *cobra.Command {
	var username, email string
	var pw passwordFlags

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Регистрация нового пользователя",
		Long: `Регистрация нового пользователя на сервере.

Пароль запрашивается интерактивно (скрытый ввод), если не передан
флагом --password или через --password-stdin.

Пример:
  qrkeeper register --username ivan --email ivan@example.com
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := pw.get(cmd)
			if err != nil {
				return err
			}

			resp, err := app.Client().Register(username, email, password)
			if err != nil {
				return err
			}

			if err := app.storeSession(resp); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "registered %s (%s), token saved\n", resp.User.Username, resp.User.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username (max 50 characters)")
	cmd.Flags().StringVar(&email, "email", "", "email")
	pw.bind(cmd)
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")

	return cmd
}

// storeSession сохраняет токен после register/login.
//
// При смене пользователя кэш истории предыдущего аккаунта очищается.
func (a *App) storeSession(resp shared.AuthResponse) error {
	prev := a.Creds
	a.Creds = &config.Credentials{
		Token:  resp.Token,
		UserID: resp.User.ID,
		Email:  resp.User.Email,
		Server: a.ServerURL,
	}
	if err := SaveCredentials(a.CredsPath, a.Creds); err != nil {
		a.Creds = prev
		return err
	}

	if prev == nil || prev.UserID != resp.User.ID {
		a.History.ReplaceAll(nil)
		return a.saveHistory()
	}
	return nil
}
