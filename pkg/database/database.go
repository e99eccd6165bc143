package database

import (
	"fmt"

	"eduboost_backend/internal/config"
	"eduboost_backend/internal/model"
	"eduboost_backend/pkg/logger"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Models 需要自动迁移的全部实体
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Program{},
		&model.Batch{},
		&model.Module{},
		&model.Assessment{},
		&model.AssignmentTemplate{},
		&model.Enrollment{},
		&model.StudentProgress{},
		&model.ModuleMarks{},
		&model.Goal{},
		&model.HealthPlan{},
	}
}

func DSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)
}

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(DSN(cfg)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Database connection established")

	if !migrate {
		return db, nil
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	logger.Log.Info("Database migration completed")
	return db, nil
}
