package textkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	cases := map[string]string{
		"Pegante Cerámico  Ácido": "pegante ceramico acido",
		"  IMPERMEABILIZANTE ":    "impermeabilizante",
		"Niño":                    "nino",
		"":                        "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Key(in), in)
	}
}

func TestKey_MismaLlaveParaVariantes(t *testing.T) {
	assert.Equal(t, Key("Sellador Éxtra"), Key("sellador extra"))
}
