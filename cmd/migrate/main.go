package main

import (
	"log"

	"github.com/Bange254/Bttshoes/internal/pkg/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	db := cfg.Database
	dsn := "postgres://" + db.User + ":" + db.Password + "@" + db.Host + ":" + db.Port + "/" + db.DBName + "?sslmode=" + db.SSLMode

	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		log.Fatal(err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal(err)
	}

	log.Println("Migration successful")
}
