// Command keygen prints a new admin API key and the hash to configure in
// ADMIN_API_KEY_HASH.
package main

import (
	"fmt"
	"os"

	"github.com/palazzem/cash-register/internal/core/security"
)

func main() {
	key, hash, err := security.GenerateAPIKey()
	if err != nil {
		fmt.Fprintln(os.Stderr, "keygen:", err)
		os.Exit(1)
	}
	fmt.Printf("API key (give it to the operator, it is not stored): %s\n", key)
	fmt.Printf("ADMIN_API_KEY_HASH=%s\n", hash)
}
