package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/agent/api"
	"github.com/IvanChernomyrdin/go-qrkeeper/internal/agent/config"
	"github.com/IvanChernomyrdin/go-qrkeeper/internal/agent/memory"
	shared "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/models"
)

// APIClient — методы сервера, которые нужны командам.
type APIClient interface {
	Register(username, email, password string) (shared.AuthResponse, error)
	Login(email, password string) (shared.AuthResponse, error)
	Me(accessToken string) (shared.MeResponse, error)
	Generate(accessToken, targetURL, name string) (shared.QRCode, error)
	Preview(accessToken, targetURL string) (shared.PreviewQRResponse, error)
	History(accessToken string) ([]shared.QRCode, error)
	Delete(accessToken, id string) (shared.DeleteQRResponse, error)
}

// для тестов
var (
	NewAPIClient = func(baseURL string, insecure bool) APIClient {
		return api.NewClient(baseURL, insecure)
	}
	ReadPassword = func(cmd *cobra.Command, fromStdin bool) (string, error) {
		return readPassword(cmd, fromStdin)
	}
	SaveCredentials   = config.Save
	SaveHistoryToFile = memory.SaveToFile
	WriteFile         = os.WriteFile
)
