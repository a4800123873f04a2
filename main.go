package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/taskboard/modules/api"
	"github.com/example/taskboard/modules/auth"
	"github.com/example/taskboard/modules/cache"
	"github.com/example/taskboard/modules/dashboard"
	"github.com/example/taskboard/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration from environment
	authDBPath := getEnv("AUTH_DB_PATH", "users.db")
	taskDBPath := getEnv("TASK_DB_PATH", "tasks.db")
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	httpPort := getEnvInt("HTTP_PORT", 3000)
	cacheTTL := getEnvDuration("CACHE_TTL", 5*time.Minute)

	log.Println("=== Taskboard ===")
	log.Printf("Users database: %s", authDBPath)
	log.Printf("Tasks database: %s", taskDBPath)
	log.Printf("Redis: %s", redisAddr)
	log.Printf("HTTP Port: %d", httpPort)

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework
	// Order: independent modules first, then dependent modules
	cacheModule := cache.NewModule(redisAddr, "taskboard:", cacheTTL)
	app.Register(cacheModule)                      // Redis cache for derived views
	app.Register(auth.NewModule(authDBPath))       // Credential store + token issuer
	app.Register(task.NewModule(taskDBPath))       // Task store + service, emits events
	app.Register(dashboard.NewModule(cacheModule)) // Cached snapshots, consumes task events
	app.Register(api.NewModule(httpPort))          // HTTP surface, depends on all of the above

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(httpPort)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(port int) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", port)
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/auth/register  - Register a new user")
	log.Println("  POST   /api/auth/login     - Login and get a token")
	log.Println("  POST   /api/auth/google    - Sign in with a Google ID token")
	log.Println("  GET    /health             - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /api/auth/me        - Your profile")
	log.Println("  GET    /api/tasks          - List your tasks, newest first")
	log.Println("  POST   /api/tasks          - Create a task")
	log.Println("  PUT    /api/tasks/:id      - Update a task (sparse patch)")
	log.Println("  DELETE /api/tasks/:id      - Delete a task")
	log.Println("  GET    /api/dashboard      - Task counters + filtered view")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}

// getEnv returns the environment variable value or a default.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvInt returns the environment variable as an int or a default.
func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvDuration returns the environment variable as a duration or a default.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
