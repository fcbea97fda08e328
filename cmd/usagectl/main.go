package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Sammyduzit/movieweb-app/internal/config"
	"github.com/Sammyduzit/movieweb-app/internal/service/triviagen"
)

// Операторская утилита для месячного счетчика вызовов основного провайдера:
//
//	usagectl stats  — показать текущее состояние счетчика
//	usagectl reset  — принудительно обнулить счетчик
func main() {
	flag.Parse()
	command := flag.Arg(0)
	if command == "" {
		command = "stats"
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	tracker := triviagen.NewUsageTracker(
		triviagen.NewFileUsageStore(cfg.Quota.UsageFile),
		cfg.Quota.MonthlyLimit,
	)

	switch command {
	case "stats":
		printStats(tracker.Stats())
	case "reset":
		tracker.ForceReset()
		fmt.Println("Счетчик вызовов сброшен.")
		printStats(tracker.Stats())
	default:
		log.Fatalf("Unknown command %q (expected: stats, reset)", command)
	}
}

func printStats(stats triviagen.UsageStats) {
	fmt.Printf("Месяц:      %s\n", stats.MonthYear)
	fmt.Printf("Вызовов:    %d/%d\n", stats.CallsMade, stats.Limit)
	fmt.Printf("Осталось:   %d\n", stats.Remaining)
	fmt.Printf("Сброшен:    %s\n", stats.LastReset.Format("2006-01-02 15:04:05"))
}
