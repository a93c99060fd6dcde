package ports

import "context"

// Severidad de una notificación al usuario.
const (
	SeveridadExito       = "exito"
	SeveridadAdvertencia = "advertencia"
	SeveridadError       = "error"
)

// Notification mensaje legible para el usuario final.
type Notification struct {
	Titulo    string
	Mensaje   string
	Severidad string
}

// Notifier define el puerto de salida del canal de notificaciones. Es
// fire-and-forget: el núcleo lo invoca tanto en aceptaciones como en
// rechazos y nunca consume un valor de retorno. Cualquier adaptador
// (log estructurado, websocket, mock de test) debe implementar esta
// interfaz; la aplicación solo conoce el contrato.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}
