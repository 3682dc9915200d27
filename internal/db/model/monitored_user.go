package model

const MonitoredUserCollection = "monitored_users"

// MonitoredUserDocument survives restarts so monitors can be re-armed on startup.
type MonitoredUserDocument struct {
	UserAddress   string `bson:"_id"` // Primary key
	SourceChainId string `bson:"source_chain_id"`
	StartedAt     int64  `bson:"started_at"`
}
