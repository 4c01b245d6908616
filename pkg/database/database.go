package database

import (
	"learnquest_backend/internal/config"
	"learnquest_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dbCfg := cfg.Database
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.DBName,
		dbCfg.Charset,
		dbCfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release 模式默认跳过自动迁移，--migrate/--migrate-only 强制执行
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		err = db.AutoMigrate(
			&model.User{},
			&model.Course{},
			&model.LearningModule{},
			&model.Question{},
			&model.QuizAttempt{},
			&model.Contest{},
			&model.LeaderboardEntry{},
		)

		if err != nil {
			return nil, err
		}

		log.Println("Database migration completed")
	}

	// 默认课程，避免空库时管理端无处挂载模块
	var count int64
	db.Model(&model.Course{}).Count(&count)
	if count == 0 {
		db.Create(&model.Course{
			Title:       "Getting Started",
			Description: "Introductory course seeded on first run.",
		})
	}

	return db, nil
}
