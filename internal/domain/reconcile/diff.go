// Package reconcile implementa la diferencia de conjuntos usada por los flujos
// de full-replace: membresías, pares producto↔opción, regiones y publicación
// en secciones del catálogo. Las funciones son puras; aplicar el resultado
// dentro de una transacción es responsabilidad del caso de uso.
package reconcile

// Dedupe elimina ids duplicados preservando el orden de primera aparición.
func Dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Diff calcula toAdd = target − current y toRemove = current − target.
// Ambas entradas se tratan como conjuntos (duplicados ignorados); los
// resultados son disjuntos por construcción.
func Diff(current, target []string) (toAdd, toRemove []string) {
	curSet := toSet(current)
	tgtSet := toSet(target)

	toAdd = make([]string, 0)
	for _, id := range Dedupe(target) {
		if _, ok := curSet[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	toRemove = make([]string, 0)
	for _, id := range Dedupe(current) {
		if _, ok := tgtSet[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}
	return toAdd, toRemove
}

// Intersect devuelve los ids presentes en ambos conjuntos, en el orden del target.
func Intersect(current, target []string) []string {
	curSet := toSet(current)
	out := make([]string, 0)
	for _, id := range Dedupe(target) {
		if _, ok := curSet[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
