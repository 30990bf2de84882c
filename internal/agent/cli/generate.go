package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewGenerateCmd создаёт QR-код на сервере и добавляет его в локальный кэш.
//
// Пример использования:
//
//	qrkeeper generate --url https://example.com --name "my site" --out site.png
func NewGenerateCmd(app *App) *cobra.Command {
	var target, name, out string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Сгенерировать QR-код и сохранить его в истории",
		Long: `Генерирует QR-код для --url и сохраняет запись на сервере.

Без --name сервер использует имя "Untitled QR".
С --out картинка сразу записывается в PNG файл.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.requireLogin()
			if err != nil {
				return err
			}

			q, err := app.Client().Generate(token, target, name)
			if err != nil {
				return err
			}

			app.History.Put(q)
			if err := app.saveHistory(); err != nil {
				return err
			}

			if out != "" {
				if err := writePNG(out, q.ImageURL); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %s %q -> %s\n", q.ID, q.Name, q.URL)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "url", "", "content to encode")
	cmd.Flags().StringVar(&name, "name", "", "record name")
	cmd.Flags().StringVar(&out, "out", "", "write PNG to this file")
	cmd.MarkFlagRequired("url")

	return cmd
}
