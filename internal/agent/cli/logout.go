package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/agent/config"
)

// NewLogoutCmd удаляет сохранённый токен и кэш истории.
//
// На сервере токен не отзывается: он остаётся валидным до истечения срока.
func NewLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Удалить сохранённый токен и кэш истории",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Remove(app.CredsPath); err != nil {
				return err
			}
			if err := config.Remove(app.HistoryPath); err != nil {
				return err
			}
			app.Creds = &config.Credentials{}
			app.History.ReplaceAll(nil)

			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}
