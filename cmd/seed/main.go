// seed prepara una base PostgreSQL para Pedidos API: aplica el esquema y siembra
// los catálogos de tipos y estados de pago.
//
// Uso: go run ./cmd/seed [-skip-migrate] [-token usuario] [-roles admin,cliente]
// Con -token imprime además un JWT de desarrollo firmado con JWT_SECRET.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Pedidos-api/pkg/config"
	"github.com/jhoicas/Pedidos-api/pkg/jwt"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

func main() {
	skipMigrate := flag.Bool("skip-migrate", false, "no aplicar migrations/*.sql")
	tokenFor := flag.String("token", "", "user_id para emitir un JWT de desarrollo")
	roles := flag.String("roles", "cliente", "roles del JWT separados por coma")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "seed"})
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if !*skipMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Migraciones: %v\n", err)
			os.Exit(1)
		}
		for _, name := range applied {
			fmt.Printf("Aplicada %s\n", name)
		}
	}

	inserted, err := postgres.SeedPaymentCatalog(ctx, pool)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Catálogo de pagos: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Catálogo de pagos: %d filas nuevas\n", inserted)

	if *tokenFor != "" {
		tok, err := jwt.Generate(cfg.JWT.Secret, *tokenFor, splitRoles(*roles), cfg.JWT.Issuer, cfg.JWT.Expiration)
		if err != nil {
			fmt.Fprintf(os.Stderr, "JWT: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(tok)
	}
}

func splitRoles(raw string) []string {
	var out []string
	for _, r := range strings.Split(raw, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}
