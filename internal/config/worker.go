package config

import "time"

// WorkerConfig holds background reconciliation worker configuration.
type WorkerConfig struct {
	// ReconcileInterval is the period between reconciliation sweeps.
	// Zero disables the worker.
	ReconcileInterval time.Duration
	// ReconcileBatchSize caps the number of bounties refreshed per sweep.
	ReconcileBatchSize int
}

// LoadWorkerConfigFromEnv loads worker configuration from environment variables.
func LoadWorkerConfigFromEnv() WorkerConfig {
	return WorkerConfig{
		ReconcileInterval:  GetEnvDuration("RECONCILE_INTERVAL", 10*time.Minute),
		ReconcileBatchSize: getEnvInt("RECONCILE_BATCH_SIZE", 50),
	}
}
