package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGate(t *testing.T) {
	t.Parallel()

	g := NewGate()
	assert.True(t, g.Accept("Solar power and renewable energy investment drives sustainable economic growth in green finance"))
	assert.False(t, g.Accept("Le gouvernement français annonce un nouveau plan pour la transition énergétique et le climat"))
	assert.False(t, g.Accept("Die Bundesregierung beschließt neue Maßnahmen für den Klimaschutz und erneuerbare Energien"))
	assert.False(t, g.Accept("   "))
}
