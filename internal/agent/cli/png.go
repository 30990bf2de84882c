package cli

import (
	"fmt"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/utils"
)

// writePNG распаковывает data URL из image_url и пишет PNG в path.
func writePNG(path, dataURL string) error {
	png, err := utils.DecodePNGDataURL(dataURL)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	return WriteFile(path, png, 0o644)
}
