package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDeleteCmd удаляет запись на сервере и из локального кэша.
//
// Чужая и несуществующая запись дают одну и ту же ошибку 404.
func NewDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Удалить QR-код из истории",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.requireLogin()
			if err != nil {
				return err
			}

			id := args[0]
			if _, err := app.Client().Delete(token, id); err != nil {
				return err
			}

			app.History.Delete(id)
			if err := app.saveHistory(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
			return nil
		},
	}
}
