// Package config provides configuration management for jobinsight.
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. A YAML configuration file
//  3. Default values from struct tags (lowest priority)
//
// All environment variables use the JOBINSIGHT_ prefix followed by the
// section and field name:
//
//	JOBINSIGHT_SERVER_PORT=8080
//	JOBINSIGHT_DATASET_PATH=data/Team_1.csv
//	JOBINSIGHT_DATASET_TOP_WORDS=20
//	JOBINSIGHT_LOGGING_LEVEL=debug
//	JOBINSIGHT_TELEMETRY_TRACE_EXPORTER=stdout
//
// The config file is taken from JOBINSIGHT_CONFIG_FILE or the first of
// config.yaml, configs/config.yaml and ../configs/config.yaml that exists.
//
// Relative dataset paths are resolved against the working directory and then
// the executable directory, see Config.DatasetPath.
//
// For tests, Default returns a configuration that needs no environment.
package config
