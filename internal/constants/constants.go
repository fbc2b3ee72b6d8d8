package constants

import "time"

const (
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

// Balanced splitter tuning. The subset enumeration is exhaustive, so the
// participant count must stay small; C(14,7) = 3432 candidates is the most
// we accept.
const (
	MaxBalancedParticipants = 14
	ExactRepeatPenalty      = 100000
	LastSignatureWeight     = 200
	HistoryBaseWeight       = 100
	HistoryWeightStep       = 20
	HistoryFloorWeight      = 20
	HistoryDepth            = 5
	DiffWeight              = 1
)

// Team signature history retained per guild.
const SignatureHistorySize = 10

const LeaderboardLimit = 50
