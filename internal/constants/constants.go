package constants

// Centralized constants for env keys, routes, JSON keys and log fields.
const (
	// Environment variable keys
	EnvConfigPath = "DUEL_CONFIG"
	EnvDatabase   = "DUEL_DB"
	EnvSeed       = "DUEL_SEED"
	EnvAddress    = "DUEL_ADDR"
	EnvHealthURL  = "DUEL_HEALTH_URL"

	DefaultDatabaseDSN = "./data/duel.db"
	DefaultAddress     = ":8080"
	DefaultHealthURL   = "http://127.0.0.1:8080/api/version"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"
)

// Routes used by the backend router
const (
	RouteAPIPrefix     = "/api"
	RouteRoster        = "/roster"
	RouteRosterByName  = "/roster/:name"
	RouteSession       = "/session"
	RouteSessionMove   = "/session/move"
	RouteSessionReset  = "/session/reset"
	RouteSessionStream = "/session/stream"
	RouteVersion       = "/version"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest       = "Invalid request"
	ErrFailedFetchRoster    = "Failed to fetch roster"
	ErrCreatureNotFound     = "Creature not found"
	ErrRosterTooSmall       = "Roster needs at least two creatures"
	ErrSessionAlreadyActive = "A session is already active; reset it first"
	ErrFailedStartSession   = "Failed to start session"
	ErrWebsocketUpgrade     = "Failed to upgrade connection"
)

// Logging field names
const (
	LogFieldSessionID = "session_id"
	LogFieldSide      = "side"
	LogFieldMove      = "move"
	LogFieldCreature  = "creature"
	LogFieldOpponent  = "opponent"
	LogFieldPhase     = "phase"
	LogFieldWinner    = "winner"
	LogFieldDamage    = "damage"
	LogFieldSource    = "source"
	LogFieldName      = "name"
	LogFieldKey       = "key"
	LogFieldAddr      = "addr"
	LogFieldPath      = "path"
	LogFieldCount     = "count"
	LogFieldEvent     = "event"
)
