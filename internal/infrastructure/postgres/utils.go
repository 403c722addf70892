package postgres

import (
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// nowUTC estampa las columnas de auditoría con el reloj de la app en UTC.
func nowUTC() time.Time { return time.Now().UTC() }

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// stringSliceParam adapta un slice para usarlo con = ANY($n). pgx codifica
// []string como array de PostgreSQL directamente.
func stringSliceParam(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
