package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Newspicel/imdb-go/api"
	"github.com/Newspicel/imdb-go/config"
	"github.com/Newspicel/imdb-go/internal/index"
	"github.com/Newspicel/imdb-go/internal/search"
)

func main() {
	// A .env file is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg := config.Load()

	// Define command-line flags; flags override the environment.
	var (
		help     = flag.Bool("help", false, "Show help message")
		version  = flag.Bool("version", false, "Show version information")
		port     = flag.String("port", cfg.Port, "Port to run the server on")
		dataDir  = flag.String("data-dir", cfg.DataDir, "Directory containing the decompressed IMDb dataset files")
		indexDir = flag.String("index-dir", cfg.IndexDir, "Directory holding the search indexes")
	)

	flag.Parse()

	if *help {
		fmt.Printf("imdb-go - search service over the IMDb non-commercial datasets\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                         # Serve on port 3000 from ./data\n", os.Args[0])
		fmt.Printf("  %s --port 9000             # Serve on port 9000\n", os.Args[0])
		fmt.Printf("  %s --data-dir /srv/imdb    # Use a custom dataset directory\n", os.Args[0])
		return
	}

	if *version {
		fmt.Printf("imdb-go v1.0.0\n")
		return
	}

	cfg.Port = *port
	cfg.DataDir = *dataDir
	cfg.IndexDir = *indexDir

	log.Printf("Using data directory: %s", cfg.DataDir)
	log.Printf("Using index directory: %s", cfg.IndexDir)

	indexes, err := index.PrepareAll(cfg)
	if err != nil {
		log.Fatalf("Failed to prepare indexes: %v", err)
	}
	defer indexes.Close()

	service, err := search.NewService(indexes)
	if err != nil {
		log.Fatalf("Failed to create search service: %v", err)
	}

	router := gin.Default()
	api.SetupRoutes(router, service, service)

	log.Printf("Starting server on port %s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
