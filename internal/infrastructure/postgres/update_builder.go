package postgres

import (
	"fmt"
	"strings"

	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// buildUpdate reduce una lista declarativa de (columna, valor) a un único
// UPDATE parametrizado. Columnas no presentes en la lista no se tocan; un
// valor nil escribe NULL. Devuelve el SQL y los argumentos posicionales.
func buildUpdate(table string, cols []repository.ColumnValue, idColumn, id string) (string, []any) {
	set := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, cv := range cols {
		set = append(set, fmt.Sprintf("%s = $%d", cv.Column, i+1))
		args = append(args, cv.Value)
	}
	args = append(args, id)
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		table, strings.Join(set, ", "), idColumn, len(args))
	return sql, args
}
