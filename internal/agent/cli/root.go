// Package cli реализует командный интерфейс (CLI) клиента qrkeeper.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - загрузку локального токена и кэша истории QR-кодов;
//   - выполнение команд и вывод результата пользователю.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/agent/config"
	"github.com/IvanChernomyrdin/go-qrkeeper/internal/agent/memory"
)

// DefaultServerURL — адрес сервера, если он не задан ни флагом,
// ни окружением, ни сохранёнными учётными данными.
const DefaultServerURL = "http://127.0.0.1:8080"

// ServerEnv — переменная окружения с адресом сервера.
const ServerEnv = "QRKEEPER_SERVER"

var errNotLoggedIn = errors.New("not logged in, run: qrkeeper login")

// App содержит состояние CLI-приложения, разделяемое между командами.
type App struct {
	// ServerURL — базовый URL сервера qrkeeper (без /api).
	ServerURL string
	// Insecure отключает проверку TLS сертификата сервера.
	Insecure bool

	// CredsPath — путь к файлу с токеном.
	CredsPath string
	// Creds — загруженные учётные данные. Не nil после PersistentPreRunE.
	Creds *config.Credentials

	// HistoryPath — путь к локальному кэшу истории.
	HistoryPath string
	// History — кэш истории текущего пользователя.
	History *memory.HistoryStore
}

// Client создаёт API-клиент для текущего сервера.
func (a *App) Client() APIClient {
	return NewAPIClient(a.ServerURL, a.Insecure)
}

// requireLogin возвращает токен или errNotLoggedIn.
func (a *App) requireLogin() (string, error) {
	if !a.Creds.LoggedIn() {
		return "", errNotLoggedIn
	}
	return a.Creds.Token, nil
}

// token возвращает сохранённый токен или пустую строку.
func (a *App) token() string {
	if a.Creds == nil {
		return ""
	}
	return a.Creds.Token
}

// saveHistory сбрасывает кэш истории на диск.
func (a *App) saveHistory() error {
	owner := ""
	if a.Creds != nil {
		owner = a.Creds.UserID
	}
	return SaveHistoryToFile(a.HistoryPath, owner, a.History)
}

// load читает токен и кэш истории из каталога dir.
//
// Кэш другого пользователя (после смены аккаунта) не показывается.
func (a *App) load(dir string) error {
	if dir == "" {
		d, err := config.HomeDir()
		if err != nil {
			return err
		}
		dir = d
	}
	a.CredsPath = filepath.Join(dir, "credentials.json")
	a.HistoryPath = filepath.Join(dir, "history.json")

	creds, err := config.Load(a.CredsPath)
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}
	a.Creds = creds

	a.History = memory.NewHistory()
	owner, err := memory.LoadFromFile(a.HistoryPath, a.History)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if owner != a.Creds.UserID {
		a.History.ReplaceAll(nil)
	}
	return nil
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются командой version.
// Адрес сервера выбирается так: флаг --server, затем QRKEEPER_SERVER,
// затем сервер из сохранённых учётных данных, затем DefaultServerURL.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}
	var dir string

	cmd := &cobra.Command{
		Use:   "qrkeeper",
		Short: "qrkeeper CLI: генерация QR-кодов и история пользователя",
		Long: `qrkeeper CLI.

Команды:
  register  Регистрация нового пользователя (токен сохраняется)
  login     Вход, токен сохраняется в ~/.qrkeeper/credentials.json
  logout    Удалить сохранённый токен и кэш истории
  whoami    Показать, кому принадлежит сохранённый токен
  generate  Сгенерировать QR-код и сохранить его в истории
  preview   Сгенерировать QR-код без сохранения
  history   Показать историю QR-кодов
  export    Сохранить картинку QR-кода из истории в PNG файл
  delete    Удалить QR-код из истории
  version   Версия и дата сборки

Примеры:
  qrkeeper register --username ivan --email ivan@example.com
  qrkeeper login --email ivan@example.com
  qrkeeper generate --url https://example.com --name "my site"
  qrkeeper history
  qrkeeper export <id> site.png
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.load(dir); err != nil {
				return err
			}

			if !cmd.Flags().Changed("server") {
				switch {
				case os.Getenv(ServerEnv) != "":
					app.ServerURL = os.Getenv(ServerEnv)
				case app.Creds.Server != "":
					app.ServerURL = app.Creds.Server
				}
			}
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", DefaultServerURL, "server base URL (env "+ServerEnv+")")
	cmd.PersistentFlags().BoolVar(&app.Insecure, "insecure", false, "skip TLS certificate verification (self-signed dev server)")
	cmd.PersistentFlags().StringVar(&dir, "config-dir", "", "directory for credentials and history (default ~/.qrkeeper)")

	cmd.AddCommand(NewRegisterCmd(app))
	cmd.AddCommand(NewLoginCmd(app))
	cmd.AddCommand(NewLogoutCmd(app))
	cmd.AddCommand(NewWhoamiCmd(app))
	cmd.AddCommand(NewGenerateCmd(app))
	cmd.AddCommand(NewPreviewCmd(app))
	cmd.AddCommand(NewHistoryCmd(app))
	cmd.AddCommand(NewExportCmd(app))
	cmd.AddCommand(NewDeleteCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке сообщение выводится в stderr, процесс завершается с кодом 1.
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
