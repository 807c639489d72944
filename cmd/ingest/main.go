package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"rag-chat-be/internal/bootstrap"
	"rag-chat-be/internal/config"
	"rag-chat-be/internal/constant"
	"rag-chat-be/internal/dto"
	"rag-chat-be/pkg/database"
)

// Ingests a document for a user without going through the HTTP endpoint.
// Useful for seeding a corpus before a demo or a load test.
func main() {
	userID := flag.String("user", "", "user identity to ingest for")
	document := flag.String("doc", "", "document name in the object store")
	flag.Parse()

	if *userID == "" || *document == "" {
		color.Red("Usage: ingest -user <user_id> -doc <document_name>")
		os.Exit(1)
	}

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	color.Cyan("Ingesting %s for user %s", *document, *userID)

	start := time.Now()
	summary, err := container.IngestService.Ingest(context.Background(), dto.ChatMessageRequest{
		UserId:      *userID,
		RequestId:   uuid.NewString(),
		RequestTime: time.Now().Format(constant.RequestTimeLayout),
		Type:        constant.TurnTypeDocument,
		Body:        *document,
	})
	if err != nil {
		color.Red("Ingest failed: %v", err)
		os.Exit(1)
	}

	color.Green("Done in %s", time.Since(start).Round(time.Millisecond))
	color.Yellow("Summary:\n%s", summary)
}
