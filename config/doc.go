// Package config loads service configuration with Viper.
//
// A YAML file provides the base values. A .env file, loaded with godotenv,
// and the process environment override them. Only variables carrying the
// loader's prefix are considered; the prefix is stripped and the rest is
// mapped onto nested keys:
//
//	RXDEMO_LOGGING_LEVEL=debug   ->  logging.level
//	RXDEMO_PIPELINE_KIND=range   ->  pipeline.kind
//
// Usage:
//
//	var cfg AppConfig
//	err := config.LoadConfig("rxdemo", &cfg, config.WithConfigFile(path))
package config
