package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Contable-api/pkg/textnorm"
)

func TestPlegar(t *testing.T) {
	casos := []struct {
		entrada  string
		esperado string
	}{
		{"Depósitos Bancarios", "depositos bancarios"},
		{"  CAJA  ", "caja"},
		{"Almacén", "almacen"},
		{"ñandú", "nandu"}, // la ñ pierde la virgulilla; suficiente para búsqueda
		{"", ""},
	}
	for _, c := range casos {
		assert.Equal(t, c.esperado, textnorm.Plegar(c.entrada), "entrada: %q", c.entrada)
	}
}
