package params

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type HTTP struct {
	// Addr is the listen address for the REST/WebSocket server.
	Addr string
	// CORSOrigins are the allowed browser origins.
	CORSOrigins []string
}

type Board struct {
	// DefaultActor is used when a request does not name the acting user.
	// In a real deployment the user would come from the security context.
	DefaultActor string
}

type Config struct {
	HTTP  HTTP
	Board Board
	// LogFile, when non-empty, tees JSON logs into a file next to stdout.
	LogFile string
}

func Default() Config {
	return Config{
		HTTP: HTTP{
			Addr:        ":8080",
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Board: Board{
			DefaultActor: "Test User",
		},
		LogFile: "",
	}
}

// LoadFromEnv loads configuration from a .env file (if it exists) and
// environment variables. Priority: ENV > .env file > defaults.
func LoadFromEnv(envPath string) Config {
	cfg := Default()

	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load() // loads .env from current directory
	}

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.HTTP.Addr = addr
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.HTTP.CORSOrigins = strings.Split(origins, ",")
	}
	if actor := os.Getenv("DEFAULT_ACTOR"); actor != "" {
		cfg.Board.DefaultActor = actor
	}
	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		cfg.LogFile = logFile
	}

	return cfg
}
