package entity

import "time"

// Almacen representa una ubicación física donde se almacena inventario.
type Almacen struct {
	ID        string
	Nombre    string
	Direccion string
	Ciudad    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
