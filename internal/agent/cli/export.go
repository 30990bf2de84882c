package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	serr "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/errors"
)

// NewExportCmd записывает картинку QR-кода из локального кэша в PNG файл.
//
// Сеть не нужна: image_url уже содержит PNG целиком.
//
// Пример использования:
//
//	qrkeeper export 3f0c... site.png
func NewExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export <id> <file.png>",
		Short: "Сохранить картинку QR-кода из истории в PNG файл",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, path := args[0], args[1]

			q, err := app.History.Get(id)
			if err != nil {
				if errors.Is(err, serr.ErrNotCached) {
					return fmt.Errorf("%w, run: qrkeeper history", err)
				}
				return err
			}

			if err := writePNG(path, q.ImageURL); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n", id, path)
			return nil
		},
	}
}
