package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"babel/internal/api"
	"babel/internal/config"
	"babel/internal/dsl"
	"babel/internal/pg"
	"babel/internal/stores"
)

func main() {
	cfg := config.Load("babel.json", os.Args[1:])

	lang, err := dsl.ParseLang(cfg.Lang)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	tables, err := dsl.LoadAllTables(cfg.DefsDir)
	if err != nil {
		log.Fatalf("loading definitions: %v", err)
	}
	fmt.Printf("Loaded %d table definitions\n", len(tables))

	catalog, err := stores.LoadCatalog(cfg.StoresDir)
	if err != nil {
		log.Fatalf("loading store catalog: %v", err)
	}
	fmt.Printf("Loaded %d stores\n", len(catalog))

	storage := api.NewStorage(tables, catalog)

	if issues := storage.Lint(); len(issues) > 0 {
		for _, i := range issues {
			log.Printf("lint: %s.%s: %s", i.Table, i.Field, i.Message)
		}
	}

	if cfg.DBURL != "" && cfg.AutoMigrate {
		db, err := pg.Open(cfg.DBURL)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		ddl, err := pg.GenerateDDL(context.Background(), tables, storage)
		if err != nil {
			log.Fatalf("generating DDL: %v", err)
		}
		if err := pg.ApplyDDL(db, ddl); err != nil {
			log.Fatalf("applying DDL: %v", err)
		}
		_ = db.Close()
		fmt.Println("Schema migrated")
	}

	fmt.Printf("Starting babel on :%s...\n", cfg.Port)
	api.RunServer(":"+cfg.Port, storage, lang)
}
