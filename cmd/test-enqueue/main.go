package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	queuePkg "github.com/jwebster45206/kingdom-council/pkg/queue"
)

// Dev tool: pushes an advance_round request for a game onto the
// council queue so a running worker has something to chew on.
func main() {
	gameID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	if len(os.Args) > 1 {
		parsed, err := uuid.Parse(os.Args[1])
		if err != nil {
			log.Fatal("Invalid game ID:", err)
		}
		gameID = parsed
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}
	client := redis.NewClient(redisOpts)
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	fmt.Println("Connected to Redis successfully!")

	req := queuePkg.NewAdvanceRound(gameID)
	data, err := req.ToJSON()
	if err != nil {
		log.Fatal("Failed to marshal request:", err)
	}

	if err := client.RPush(ctx, "council-requests", data).Err(); err != nil {
		log.Fatal("Failed to enqueue request:", err)
	}
	fmt.Printf("Enqueued advance_round request: %s\n", req.RequestID)

	depth, err := client.LLen(ctx, "council-requests").Result()
	if err != nil {
		log.Fatal("Failed to get queue depth:", err)
	}
	fmt.Printf("Queue depth: %d requests\n", depth)
	fmt.Println("Now start the worker to see it process the request!")
	fmt.Println("   Run: go run cmd/worker/main.go")
}
