package main

import (
	"net/http"
	"os"
	"time"

	"github.com/TBKT-SYSTEM/pokemon-battle/internal/constants"
)

func main() {
	url := os.Getenv(constants.EnvHealthURL)
	if url == "" {
		url = constants.DefaultHealthURL
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		os.Exit(1)
	}
	os.Exit(0)
}
