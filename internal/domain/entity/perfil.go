package entity

import "time"

// Perfil es el tenant dueño de un juego completo de snapshots (libro
// contable y kardex). Los perfiles están totalmente aislados entre sí: el
// núcleo no tiene visibilidad cruzada.
type Perfil struct {
	ID        string
	Nombre    string
	CreatedAt time.Time
}
