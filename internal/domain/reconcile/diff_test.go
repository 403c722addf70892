package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/backoffice-api/internal/domain/reconcile"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dedupe
// ──────────────────────────────────────────────────────────────────────────────

func TestDedupe_ConservaOrdenDePrimeraAparicion(t *testing.T) {
	got := reconcile.Dedupe([]string{"b", "a", "b", "c", "a"})
	assert.Equal(t, []string{"b", "a", "c"}, got)
}

func TestDedupe_ListaVacia(t *testing.T) {
	assert.Empty(t, reconcile.Dedupe(nil))
	assert.Empty(t, reconcile.Dedupe([]string{}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Diff
// ──────────────────────────────────────────────────────────────────────────────

func TestDiff_CalculaAltasYBajas(t *testing.T) {
	current := []string{"a", "b", "c"}
	target := []string{"b", "c", "d"}

	toAdd, toRemove := reconcile.Diff(current, target)

	assert.Equal(t, []string{"d"}, toAdd, "solo d falta en current")
	assert.Equal(t, []string{"a"}, toRemove, "solo a sobra respecto al target")
}

// Los conjuntos resultantes son disjuntos por construcción: un id no puede
// ser alta y baja a la vez.
func TestDiff_ResultadosDisjuntos(t *testing.T) {
	current := []string{"a", "b", "b", "c"}
	target := []string{"c", "d", "d", "e"}

	toAdd, toRemove := reconcile.Diff(current, target)

	seen := make(map[string]bool)
	for _, id := range toAdd {
		seen[id] = true
	}
	for _, id := range toRemove {
		assert.False(t, seen[id], "id %s no puede estar en ambos conjuntos", id)
	}
}

// Aplicar el diff dos veces con el mismo target no produce deltas la segunda
// vez: current == target implica diff vacío.
func TestDiff_Idempotente(t *testing.T) {
	target := []string{"x", "y", "z"}

	toAdd, toRemove := reconcile.Diff(target, target)

	assert.Empty(t, toAdd)
	assert.Empty(t, toRemove)
}

func TestDiff_TargetVacioQuitaTodo(t *testing.T) {
	toAdd, toRemove := reconcile.Diff([]string{"a", "b"}, nil)

	assert.Empty(t, toAdd)
	assert.ElementsMatch(t, []string{"a", "b"}, toRemove)
}

func TestDiff_CurrentVacioAgregaTodo(t *testing.T) {
	toAdd, toRemove := reconcile.Diff(nil, []string{"a", "b"})

	assert.ElementsMatch(t, []string{"a", "b"}, toAdd)
	assert.Empty(t, toRemove)
}

// ──────────────────────────────────────────────────────────────────────────────
// Intersect
// ──────────────────────────────────────────────────────────────────────────────

func TestIntersect_SoloElementosComunes(t *testing.T) {
	got := reconcile.Intersect([]string{"a", "b", "c"}, []string{"b", "c", "d"})
	assert.ElementsMatch(t, []string{"b", "c"}, got)
}

func TestIntersect_SinComunes(t *testing.T) {
	assert.Empty(t, reconcile.Intersect([]string{"a"}, []string{"b"}))
}
