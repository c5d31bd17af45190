package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/pkg/config"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

func TestOpen_Memoria(t *testing.T) {
	ctx := context.Background()
	b, err := Open(ctx, config.DBConfig{Driver: config.DriverMemory}, Options{}, logger.Nop())
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, config.DriverMemory, b.Driver)
	require.NoError(t, b.Categories.Create(ctx, &entity.Category{Name: "C"}))
	list, err := b.Categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := Open(context.Background(), config.DBConfig{Driver: "sqlite"}, Options{}, logger.Nop())
	assert.Error(t, err)
}
