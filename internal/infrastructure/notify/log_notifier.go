// Package notify adaptadores del puerto reports.Notifier.
package notify

import (
	"context"

	"github.com/tu-usuario/petcare-pro/pkg/logger"
)

// LogNotifier publica los avisos del pipeline de métricas en el log
// estructurado. Donde el dashboard mostraría un toast, el backend deja un
// registro con nivel error.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Error registra un aviso de fallo visible para operación.
func (n *LogNotifier) Error(ctx context.Context, message string, err error) {
	n.log.Error().Err(err).Msg(message)
}
