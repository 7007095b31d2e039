// Command hash-generator prints a bcrypt hash for each password read from
// stdin, one per line, using the same hasher as the server.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/agsdev/tasks-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	hasher, err := auth.NewBcryptHasher(*cost, 1, logger)
	if err != nil {
		logger.Error("invalid hasher settings", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		password := scanner.Text()
		if password == "" {
			continue
		}
		hash, err := hasher.Hash(ctx, password)
		if err != nil {
			logger.Error("failed to hash password", "error", err)
			continue
		}
		fmt.Println(hash)
	}
	if err := scanner.Err(); err != nil {
		logger.Error("failed to read stdin", "error", err)
		os.Exit(1)
	}
}
