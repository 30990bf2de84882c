package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// NewHistoryCmd загружает историю с сервера, обновляет кэш и печатает таблицу.
//
// С --offline сервер не опрашивается, печатается локальный кэш.
func NewHistoryCmd(app *App) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Показать историю QR-кодов (новые первыми)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !offline {
				token, err := app.requireLogin()
				if err != nil {
					return err
				}

				items, err := app.Client().History(token)
				if err != nil {
					return err
				}
				app.History.ReplaceAll(items)
				if err := app.saveHistory(); err != nil {
					return err
				}
			}

			items := app.History.List()
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no qr codes yet")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tURL\tCREATED")
			for _, q := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", q.ID, q.Name, q.URL, q.CreatedAt.Local().Format(time.DateTime))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "print the local cache without contacting the server")

	return cmd
}
