package main

import (
	"log"

	corecmd "github.com/m3rciful/privacybot/core/cmd"
	"github.com/m3rciful/privacybot/internal/bot"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return bot.LoadConfig(path)
		},
		Bootstrap: func(cfg corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			carrier, ok := cfg.(*bot.Carrier)
			if !ok {
				log.Fatalf("unexpected config carrier type %T", cfg)
			}
			return bot.New(carrier)
		},
	})
	if err != nil {
		log.Fatalf("privacybot: %v", err)
	}
}
