// cmd/seedadmin/main.go — Crea/actualiza un administrador verificado.
// Uso: ADMIN_EMAIL=.. ADMIN_PASSWORD=.. go run ./cmd/seedadmin
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/29jbarrera/FaktuFlow-back/internal/config"
	"github.com/29jbarrera/FaktuFlow-back/internal/crypto"
	"github.com/29jbarrera/FaktuFlow-back/internal/infra"
	"github.com/29jbarrera/FaktuFlow-back/internal/model"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}
	nombre := os.Getenv("ADMIN_NOMBRE")
	if nombre == "" {
		nombre = "Admin"
	}

	cipher, err := crypto.NewCipher(cfg.EncryptionKey, cfg.EncryptionIV)
	if err != nil {
		log.Fatalf("cipher error: %v", err)
	}
	encEmail, err := cipher.Encrypt(email)
	if err != nil {
		log.Fatalf("encrypt error: %v", err)
	}
	hash, err := crypto.HashPassword(password)
	if err != nil {
		log.Fatalf("bcrypt error: %v", err)
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	emailHash := crypto.Hash(email)
	result := db.Exec(`
		INSERT INTO usuarios (nombre, email, email_hash, password, rol, verificado, fecha_registro)
		VALUES (?, ?, ?, ?, ?, true, NOW())
		ON CONFLICT (email_hash) DO UPDATE
		SET password = EXCLUDED.password,
		    nombre = EXCLUDED.nombre,
		    rol = EXCLUDED.rol,
		    verificado = true
	`, nombre, encEmail, emailHash, hash, string(model.RolAdmin))
	if result.Error != nil {
		log.Fatalf("insert error: %v", result.Error)
	}
	fmt.Printf("✅ Administrador '%s' creado/actualizado\n", email)
}
