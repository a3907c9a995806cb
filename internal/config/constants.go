package config

import "time"

// Application constants
const (
	AppName    = "jobinsight"
	AppTitle   = "Job Market Analysis"
	AppVersion = "1.0.0"
	AppFooter  = "Created by Team 1"

	// Dataset defaults
	DefaultDatasetPath       = "data/Team_1.csv"
	DefaultPlaceholderPrefix = "Unnamed"
	DefaultTopWords          = 20
	DefaultTopSkills         = 10
	DefaultWordCloudWords    = 200
	DefaultPreviewRows       = 5
	MaxPreviewRows           = 100
	DefaultCacheSize         = 4

	// Word cloud canvas
	WordCloudWidth  = 1000
	WordCloudHeight = 500

	// File Paths (relative to executable)
	DefaultLogFile = "logs/jobinsight.log"

	// Rate Limiting
	DefaultRateLimit = 50
	DefaultBurstSize = 100

	// Timeouts
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultRequestTimeout = 20 * time.Second
	HealthCheckTimeout    = 5 * time.Second

	// API Endpoints
	APIBasePath       = "/api"
	DataEndpoint      = APIBasePath + "/data"
	HealthEndpoint    = APIBasePath + "/health"
	VersionEndpoint   = APIBasePath + "/version"
	MetricsEndpoint   = "/metrics"
	DashboardPath     = "/"
	ExperienceParam   = "experience"
	ExportViewParam   = "view"
	PreviewLimitParam = "limit"
)
