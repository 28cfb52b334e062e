package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

func TestLifecycle_DesactivarSellaFecha(t *testing.T) {
	l := entity.Active()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	l.Deactivate(at)

	assert.False(t, l.IsActive)
	require.NotNil(t, l.DeletedAt)
	assert.Equal(t, at, *l.DeletedAt)
}

func TestLifecycle_ReactivarLimpiaFecha(t *testing.T) {
	l := entity.Active()
	l.Deactivate(time.Now())

	l.Reactivate()

	assert.True(t, l.IsActive)
	assert.Nil(t, l.DeletedAt)
}

func TestUnit_Valid(t *testing.T) {
	assert.True(t, entity.UnitKilo.Valid())
	assert.True(t, entity.UnitPackage.Valid())
	assert.False(t, entity.Unit("TON").Valid())
}
