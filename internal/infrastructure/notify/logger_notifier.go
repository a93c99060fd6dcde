// Package notify implementa el canal de notificaciones al usuario sobre el
// log estructurado. El puerto es fire-and-forget, así que el adaptador
// nunca devuelve error: una notificación perdida no puede tumbar una
// operación contable ya aplicada.
package notify

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/application/ports"
	"github.com/jhoicas/Contable-api/pkg/logger"
	"github.com/rs/zerolog"
)

var _ ports.Notifier = (*LoggerNotifier)(nil)

// LoggerNotifier emite cada notificación como un evento de log con nivel
// según su severidad.
type LoggerNotifier struct {
	log *logger.Logger
}

// NewLoggerNotifier construye el adaptador.
func NewLoggerNotifier(log *logger.Logger) *LoggerNotifier {
	return &LoggerNotifier{log: log}
}

// Notify registra la notificación. Nunca bloquea ni falla.
func (n *LoggerNotifier) Notify(_ context.Context, notif ports.Notification) {
	var evento *zerolog.Event
	switch notif.Severidad {
	case ports.SeveridadAdvertencia:
		evento = n.log.Warn()
	case ports.SeveridadError:
		evento = n.log.Error()
	default:
		evento = n.log.Info()
	}
	evento.
		Str("titulo", notif.Titulo).
		Str("severidad", notif.Severidad).
		Msg(notif.Mensaje)
}
