package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"
)

func main() {
	fmt.Println("Запуск qrkeeper...")

	clientName := "qrkeeper"
	if runtime.GOOS == "windows" {
		clientName = "qrkeeper.exe"
	}
	// запускаем сервер на фоне, конфиг и .env берутся из корня репозитория
	server := exec.Command("go", "run", "./cmd/server", "-config", "./configs/server.yaml")
	server.Stdout = os.Stdout
	server.Stderr = os.Stderr

	if err := server.Start(); err != nil {
		fmt.Printf("Ошибка запуска сервера: %v\n", err)
		return
	}

	time.Sleep(3 * time.Second)
	// собираем клиента
	if _, err := os.Stat(clientName); os.IsNotExist(err) {
		fmt.Println("Сборка клиента...")
		build := exec.Command("go", "build", "-o", clientName, "./cmd/qrkeeper")
		build.Stdout = os.Stdout
		build.Stderr = os.Stderr
		if err := build.Run(); err != nil {
			fmt.Printf("Ошибка сборки клиента: %v\n", err)
		}
		// если не винда даём права
		if runtime.GOOS != "windows" {
			os.Chmod(clientName, 0755)
		}
	}

	fmt.Println("Сервер запущен")
	// пишем как запускать клиента
	if runtime.GOOS == "windows" {
		fmt.Println("Данный терминал не закрывай. Открой новый и запускай: .\\qrkeeper.exe register --username ivan --email ivan@example.com")
	} else {
		fmt.Println("Данный терминал не закрывай. Открой новый и запускай: ./qrkeeper register --username ivan --email ivan@example.com")
	}

	server.Wait()
}
