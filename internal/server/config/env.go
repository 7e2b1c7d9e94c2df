package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/catalogadmin/internal/flagx"
	"github.com/joho/godotenv"
)

// loadDotenv is a seam for tests.
var loadDotenv = godotenv.Load

// parseEnv overlays environment variables. A .env file (or the one named by
// -env) is loaded first when present; variables already set in the process
// environment win over the file.
//
// Recognised variables: PORT, HTTP_ADDR, GRPC_ADDR, DATABASE_URL,
// JWT_SECRET, TOKEN_TTL, OWNER_ID, OWNER_EMAIL, BCRYPT_COST, LOG_LEVEL,
// S3_ACCESS_KEY, S3_SECRET_KEY, S3_BUCKET, S3_REGION, S3_ENDPOINT,
// S3_PUBLIC_URL.
func parseEnv(config *Config) {
	if path := flagx.EnvFileFlag(); path != "" {
		if err := loadDotenv(path); err != nil {
			panic(err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		_ = loadDotenv()
	}

	if v, ok := lookup("PORT"); ok {
		config.EndpointAddrHTTP = portToAddr(v)
	}
	if v, ok := lookup("HTTP_ADDR"); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := lookup("GRPC_ADDR"); ok {
		config.EndpointAddrGRPC = v
	}
	if v, ok := lookup("DATABASE_URL"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := lookup("JWT_SECRET"); ok {
		config.SecretKey = v
	}
	if v, ok := lookup("TOKEN_TTL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
	if v, ok := lookup("OWNER_ID"); ok {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.OwnerID = id
		}
	}
	if v, ok := lookup("OWNER_EMAIL"); ok {
		config.OwnerEmail = strings.ToLower(v)
	}
	if v, ok := lookup("BCRYPT_COST"); ok {
		if cost, err := strconv.Atoi(v); err == nil {
			config.PasswordHashCost = cost
		}
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		config.LogLevel = v
	}
	if v, ok := lookup("S3_ACCESS_KEY"); ok {
		config.S3RootUser = v
	}
	if v, ok := lookup("S3_SECRET_KEY"); ok {
		config.S3RootPassword = v
	}
	if v, ok := lookup("S3_BUCKET"); ok {
		config.S3Bucket = v
	}
	if v, ok := lookup("S3_REGION"); ok {
		config.S3Region = v
	}
	if v, ok := lookup("S3_ENDPOINT"); ok {
		config.S3BaseEndpoint = v
	}
	if v, ok := lookup("S3_PUBLIC_URL"); ok {
		config.S3PublicBaseURL = v
	}
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func portToAddr(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
