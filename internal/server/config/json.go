package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/catalogadmin/internal/flagx"
	"github.com/dmitrijs2005/catalogadmin/internal/timex"
)

// JsonConfig is the on-disk shape of the optional -c/-config file. Only
// fields present in the file override the current values.
type JsonConfig struct {
	EndpointAddrHTTP      *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC      *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN           *string         `json:"database_dsn"`
	SecretKey             *string         `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	OwnerID               *int64          `json:"owner_id"`
	OwnerEmail            *string         `json:"owner_email"`
	PasswordHashCost      *int            `json:"password_hash_cost"`
	MaxUploadSize         *int64          `json:"max_upload_size"`
	MaxBodySize           *int64          `json:"max_body_size"`
	LogLevel              *string         `json:"log_level"`
	S3RootUser            *string         `json:"s3_root_user"`
	S3RootPassword        *string         `json:"s3_root_password"`
	S3Bucket              *string         `json:"s3_bucket"`
	S3Region              *string         `json:"s3_region"`
	S3BaseEndpoint        *string         `json:"s3_base_endpoint"`
	S3PublicBaseURL       *string         `json:"s3_public_base_url"`
	HealthCheckInterval   *timex.Duration `json:"health_check_interval"`
}

// parseJson loads the file named by -c/-config into config. Nothing happens
// when no file is given; unreadable or invalid files panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.OwnerEmail, c.OwnerEmail)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3PublicBaseURL, c.S3PublicBaseURL)

	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.HealthCheckInterval != nil {
		config.HealthCheckInterval = c.HealthCheckInterval.Duration
	}
	if c.OwnerID != nil {
		config.OwnerID = *c.OwnerID
	}
	if c.PasswordHashCost != nil {
		config.PasswordHashCost = *c.PasswordHashCost
	}
	if c.MaxUploadSize != nil {
		config.MaxUploadSize = *c.MaxUploadSize
	}
	if c.MaxBodySize != nil {
		config.MaxBodySize = *c.MaxBodySize
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
