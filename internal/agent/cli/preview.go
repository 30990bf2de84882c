package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewPreviewCmd рендерит QR-код без сохранения в истории.
//
// Логин не обязателен. Сохранённый токен отправляется, если он есть,
// и тогда сервер добавляет owner_id в ответ.
func NewPreviewCmd(app *App) *cobra.Command {
	var target, out string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Сгенерировать QR-код без сохранения",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Client().Preview(app.token(), target)
			if err != nil {
				return err
			}

			if out != "" {
				if err := writePNG(out, resp.ImageURL); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "preview of %s written to %s\n", resp.URL, out)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), resp.ImageURL)
			}
			if resp.OwnerID != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "owner=%s\n", resp.OwnerID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "url", "", "content to encode")
	cmd.Flags().StringVar(&out, "out", "", "write PNG to this file instead of printing the data URL")
	cmd.MarkFlagRequired("url")

	return cmd
}
