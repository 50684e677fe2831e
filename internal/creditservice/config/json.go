package config

import (
	"encoding/json"
	"os"

	"github.com/mycompany/credit-platform/internal/flagx"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling, an intermediate DTO copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr      string `json:"endpoint_addr"`
	DatabaseDSN       string `json:"database_dsn"`
	SecretKey         string `json:"secret_key"`
	AuthServiceURL    string `json:"auth_service_url"`
	RiskServiceURL    string `json:"risk_service_url"`
	CORSAllowedOrigin string `json:"cors_allowed_origin"`
	S3RootUser        string `json:"s3_root_user"`
	S3RootPassword    string `json:"s3_root_password"`
	S3Bucket          string `json:"s3_bucket"`
	S3Region          string `json:"s3_region"`
	S3BaseEndpoint    string `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path is taken from the -c or -config
// command-line flags; when neither is set, no JSON file is loaded. Only
// fields present in the file override the current values.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&config.EndpointAddr, c.EndpointAddr)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.SecretKey, c.SecretKey)
	set(&config.AuthServiceURL, c.AuthServiceURL)
	set(&config.RiskServiceURL, c.RiskServiceURL)
	set(&config.CORSAllowedOrigin, c.CORSAllowedOrigin)
	set(&config.S3RootUser, c.S3RootUser)
	set(&config.S3RootPassword, c.S3RootPassword)
	set(&config.S3Bucket, c.S3Bucket)
	set(&config.S3Region, c.S3Region)
	set(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}
