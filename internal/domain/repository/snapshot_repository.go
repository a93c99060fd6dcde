package repository

import "context"

// SnapshotRepository persiste los snapshots de estado por perfil y clase de
// dato. El núcleo lo consulta solo en los bordes de cada caso de uso: carga
// al inicio, guarda al final, nunca a mitad de una transición.
//
// Claves de dato en uso: "contabilidad", "kardex_promedio:<instancia>",
// "kardex_peps:<instancia>", "kardex_ueps:<instancia>".
type SnapshotRepository interface {
	// Get devuelve el snapshot serializado o domain.ErrNoEncontrado si el
	// perfil aún no tiene datos de esa clase; el caller aporta el estado
	// cero como default.
	Get(ctx context.Context, perfilID, clase string) ([]byte, error)
	// Set inserta o reemplaza el snapshot completo.
	Set(ctx context.Context, perfilID, clase string, data []byte) error
	// ListClases lista las clases almacenadas del perfil que empiezan con
	// el prefijo dado (para enumerar instancias de kardex con nombre).
	ListClases(ctx context.Context, perfilID, prefijo string) ([]string, error)
}
