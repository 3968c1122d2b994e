package model

import (
	"fmt"

	"caiary/internal/model/article"
	"caiary/internal/model/user"

	"gorm.io/gorm"
)

// GetModels 返回所有需要迁移的模型
func GetModels() []interface{} {
	return []interface{}{
		&user.User{},
		&user.Follow{},
		&article.Article{},
		&article.Like{},
	}
}

func InitTable(db *gorm.DB) error {
	if err := db.AutoMigrate(GetModels()...); err != nil {
		return fmt.Errorf("数据库表迁移失败: %w", err)
	}
	return nil
}
