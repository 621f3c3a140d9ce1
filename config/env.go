package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// envKeyReplacer maps nested keys such as server.port to ECOSCORE_SERVER_PORT
var envKeyReplacer = strings.NewReplacer(".", "_")

// loadEnvFile loads ./.env into the process environment when present.
// Variables that are already set win over the file.
func loadEnvFile() error {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}
