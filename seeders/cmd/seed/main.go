package main

import (
	"flag"
	"log"

	"hospital-maintenance/pkg/config"
	"hospital-maintenance/pkg/database/postgresql"
	"hospital-maintenance/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 database seeder")
	log.Println("======================================================")

	runDictionaries := flag.Bool("dictionaries", false, "seed hospitals and categories")
	runEquipment := flag.Bool("equipment", false, "seed the demo equipment fleet")
	runAll := flag.Bool("all", false, "run every seeder")

	flag.Parse()

	if !*runDictionaries && !*runEquipment && !*runAll {
		log.Println("❌ no seeder selected")
		log.Println("")
		flag.PrintDefaults()
		log.Println("")
		log.Println("examples:")
		log.Println("  go run ./seeders/cmd/seed -dictionaries")
		log.Println("  go run ./seeders/cmd/seed -all")
		return
	}

	cfg := config.New()
	log.Println("📦 using DSN:", cfg.Postgres.DSN)
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	if *runDictionaries || *runAll {
		seeders.SeedDictionaries(dbPool)
	}
	if *runEquipment || *runAll {
		seeders.SeedEquipment(dbPool)
	}

	log.Println("✅ seeding finished")
}
