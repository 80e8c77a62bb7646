// Command seed issues an API key into the router database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nulzo/autorouter/internal/cli"
	"github.com/nulzo/autorouter/internal/server/middleware"
	"github.com/nulzo/autorouter/internal/store/model"
	"github.com/nulzo/autorouter/internal/store/sqlite"
	"go.uber.org/zap"
)

const keyPrefix = "sk-ar-"

func main() {
	dbPath := flag.String("db", "router.db", "path to the SQLite database")
	name := flag.String("name", "default", "display name of the key")
	flag.Parse()

	repo, err := sqlite.NewSQLiteStorage(*dbPath, zap.NewNop())
	if err != nil {
		fail(err)
	}
	defer func() { _ = repo.Close() }()

	rawKey, key := newKey(*name, time.Now().UTC())
	if err := repo.APIKeys().Create(context.Background(), key); err != nil {
		fail(err)
	}

	fmt.Printf("%s Created key %s (%s)\n", cli.CheckMark(), cli.Stylize(key.Name, cli.BoldCode), key.ID)
	fmt.Printf("%s Authorization: Bearer %s\n", cli.Arrow(), cli.Stylize(rawKey, cli.Green))
	fmt.Println(cli.Stylize("The key is shown once; only its hash is stored.", cli.DimCode))
}

func newKey(name string, now time.Time) (string, *model.APIKey) {
	rawKey := keyPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
	return rawKey, &model.APIKey{
		ID:        uuid.NewString(),
		Name:      name,
		KeyHash:   middleware.HashKey(rawKey),
		KeyPrefix: rawKey[:len(keyPrefix)+4],
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", cli.CrossMark(), err)
	os.Exit(1)
}
