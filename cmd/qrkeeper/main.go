// Package main содержит точку входа клиентского CLI-приложения qrkeeper.
//
// Пакет отвечает за запуск консольного клиента и передачу информации о версии
// и дате сборки в CLI-слой приложения.
package main

import "github.com/IvanChernomyrdin/go-qrkeeper/internal/agent/cli"

var (
	// buildVersion содержит версию приложения, передаваемую при сборке
	// через -ldflags "-X main.buildVersion=...".
	buildVersion = "dev"
	// buildDate содержит дату сборки приложения.
	buildDate = "unknown"
)

func main() {
	cli.Execute(buildVersion, buildDate)
}
