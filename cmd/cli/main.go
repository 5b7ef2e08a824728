package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/agro-tools/ranch-atlas/pkg/runtime/terminal"
	"github.com/agro-tools/ranch-atlas/pkg/services/config"
	"github.com/agro-tools/ranch-atlas/pkg/services/report"
	"github.com/agro-tools/ranch-atlas/pkg/store/cache"
	"github.com/agro-tools/ranch-atlas/pkg/store/ranch"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("RANCH_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	db, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	ranchStore, err := ranch.NewStore(db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cli := terminal.NewCLI(terminal.Options{
		Generator: report.NewGenerator(ranchStore, cache.NewNoop(), 0),
		Output:    os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
