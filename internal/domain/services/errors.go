package services

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/ersonp/pokedex-core/internal/domain/entities"
	"github.com/ersonp/pokedex-core/internal/domain/ports"
)

// translateErr maps a collaborator failure onto the catalog error taxonomy.
// Unique violations become Conflict, errors already in the taxonomy pass
// through, and everything else is logged and returned as an opaque Internal.
func translateErr(logger *zap.SugaredLogger, err error, op string, keysAndValues ...any) error {
	var violation *ports.UniqueViolation
	if errors.As(err, &violation) {
		return entities.Conflict(violation.Field, violation.Value)
	}

	var domainErr *entities.Error
	if errors.As(err, &domainErr) {
		return domainErr
	}

	logger.Errorw(op+" failed", append(keysAndValues, "error", err)...)
	return entities.Internal(errors.Wrap(err, op))
}

func nopIfNil(logger *zap.SugaredLogger) *zap.SugaredLogger {
	if logger == nil {
		return zap.NewNop().Sugar()
	}
	return logger
}
