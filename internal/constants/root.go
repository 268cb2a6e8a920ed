package constants

const (
	AppName            = "rhonda"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/rhonda/rhonda.db"
	Version            = "v1.0.0"

	// DateFormat is the standard calendar-date format used throughout the
	// application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DocumentVersion is the current schema version of the persisted
	// document. Load() migrates older documents forward; it never migrates
	// backwards.
	DocumentVersion = 2

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "rhonda-"
	BackupFileSuffix = ".bak"

	// CacheVersion tags the offline response cache. Bump on every deployable
	// change; activating a new version garbage-collects every
	// differently-tagged cache.
	CacheVersion = "rhonda-cache-v1.0.0"

	// Sync constants
	SyncQueueFileName = "sync-queue.json"
	DefaultAPIBase    = "http://localhost:8080/api"

	// Offline fallback served for failed navigation requests
	OfflineFallbackURL = "/"
)

// Level thresholds: one level per LevelStep points, starting at level 1.
const LevelStep = 1000

// Consistency-score targets carried over from the original tracking
// protocol: 10 supplements per day over a 30-day window, and a fixed
// 4 sessions x 4 weeks sauna denominator. The sauna denominator does
// not scale with actual tracked days.
const (
	ConsistencyWindowDays   = 30
	ConsistencyTargetPerDay = 10
	ConsistencySaunaDenom   = 16
	HeatmapWindowDays       = 90
	FrequencyTopN           = 8
)

// Sauna-session plausibility bounds (degrees Fahrenheit). Sessions outside
// this range are rejected as obviously invalid input.
const (
	MinSaunaTemperatureF = 32
	MaxSaunaTemperatureF = 300
)
