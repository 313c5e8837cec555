package main

import (
	"log"
	"net/http"

	"scribe/pkg/config"
	"scribe/pkg/render"
	"scribe/pkg/server"
)

func main() {
	log.Println("Starting transcript render service")
	cfg := config.Load()

	var theme *render.Theme
	if cfg.ThemeFile != "" {
		th, err := render.LoadTheme(cfg.ThemeFile)
		if err != nil {
			log.Fatalf("Failed to load theme %s: %v", cfg.ThemeFile, err)
		}
		log.Printf("Loaded theme from %s with %d speaker colors", cfg.ThemeFile, len(th.SpeakerPalette))
		theme = &th
	}

	srv := server.New(cfg, theme)

	log.Printf("Server starting on :%s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, srv.Handler()))
}
