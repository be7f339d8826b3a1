package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carbosur/inventario-api/internal/domain"
)

// esUniqueViolation verifica si un error es violación de constraint único (23505).
func esUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// esContencion verifica si un error de Postgres es un conflicto transitorio
// de concurrencia: fallo de serialización (40001), deadlock detectado (40P01)
// o fila bloqueada con NOWAIT (55P03). En todos los casos la operación
// completa puede reintentarse.
func esContencion(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "40001", "40P01", "55P03":
		return true
	}
	return false
}

// traducirError convierte los errores transitorios de Postgres al error de
// dominio reintentable; el resto pasa sin tocar.
func traducirError(err error) error {
	if err == nil {
		return nil
	}
	if esContencion(err) {
		return fmt.Errorf("%w: %v", domain.ErrContencion, err)
	}
	if esUniqueViolation(err) {
		return fmt.Errorf("%w: %v", domain.ErrDuplicado, err)
	}
	return err
}
