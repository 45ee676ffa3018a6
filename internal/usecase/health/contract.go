package health

import "context"

// DBPinger checks database connectivity.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// OracleChecker checks classification oracle reachability.
type OracleChecker interface {
	HealthCheck(ctx context.Context) error
}
