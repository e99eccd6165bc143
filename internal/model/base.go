package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UUIDBase 所有业务实体共用的字符串主键，对外作为不透明 ID
// swagger:model
type UUIDBase struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *UUIDBase) BeforeCreate(tx *gorm.DB) (err error) {
	b.EnsureID()
	return
}

// EnsureID 在没有数据库钩子的场景（内存仓储、种子脚本）下补齐 ID
func (b *UUIDBase) EnsureID() {
	if b.ID == "" {
		b.ID = GenerateUUID()
	}
}

// Base 供通用存储访问公共字段
func (b *UUIDBase) Base() *UUIDBase {
	return b
}

func GenerateUUID() string {
	return uuid.New().String()
}
