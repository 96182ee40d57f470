package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type softRow struct {
	BaseModel
	Name string
}

type hardRow struct {
	RecordModel
	Name string
}

// 基础模型必须能在 sqlite 上建表：主键没有数据库侧默认值，
// UUID 全部由 BeforeCreate 生成
func TestBaseModels_MigrateAndCreateOnSqlite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&softRow{}, &hardRow{}))

	soft := softRow{Name: "a"}
	require.NoError(t, db.Create(&soft).Error)
	assert.NotEmpty(t, soft.ID)
	assert.False(t, soft.CreatedAt.IsZero())

	hard := hardRow{Name: "b"}
	require.NoError(t, db.Create(&hard).Error)
	assert.NotEmpty(t, hard.ID)

	// 显式指定的主键保持不变
	fixed := hardRow{Name: "c"}
	fixed.ID = "row-1"
	require.NoError(t, db.Create(&fixed).Error)
	assert.Equal(t, "row-1", fixed.ID)
}
