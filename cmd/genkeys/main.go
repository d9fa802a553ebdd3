// cmd/genkeys/main.go — Genera material de claves para .env:
// ENCRYPTION_KEY (32 bytes), ENCRYPTION_IV (16 bytes) y JWT_SECRET.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
)

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("rand error: %v", err)
	}
	return hex.EncodeToString(b)
}

func main() {
	fmt.Printf("ENCRYPTION_KEY=%s\n", randomHex(32))
	fmt.Printf("ENCRYPTION_IV=%s\n", randomHex(16))
	fmt.Printf("JWT_SECRET=%s\n", randomHex(32))
}
