package health

import "context"

// StorePinger checks shared cache store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// DictionaryChecker checks remote dictionary availability.
type DictionaryChecker interface {
	HealthCheck(ctx context.Context) error
}
