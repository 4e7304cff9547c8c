package database

import (
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/model"
	appLogger "exam_prep_backend/pkg/logger"
	"fmt"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models 需要自动迁移的全部模型
var Models = []interface{}{
	&model.User{},
	&model.Category{},
	&model.Question{},
	&model.Course{},
	&model.CourseLesson{},
	&model.Exam{},
	&model.ExamAttempt{},
	&model.ExamAttemptAnswer{},
	&model.CourseEnrollment{},
	&model.LessonCompletion{},
}

func dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local&clientFoundRows=true",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
			cfg.ParseTime,
		)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host,
			cfg.Port,
			cfg.User,
			cfg.Password,
			cfg.DBName,
			cfg.SSLMode,
		)
		return postgres.Open(dsn), nil
	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = "exam_prep.db"
		}
		return sqlite.Open(path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

func logLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	}
	return logger.Warn
}

// Open 建立连接但不做迁移
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger:                                   logger.Default.LogMode(logLevel(cfg.LogLevel)),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}

	appLogger.Log.Info("Database connection established", zap.String("driver", cfg.Driver))
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return err
	}
	appLogger.Log.Info("Database migration completed")
	return nil
}

// InitDB release 模式下默认跳过迁移，通过 -migrate 参数强制执行
func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	if !migrate {
		return db, nil
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	SeedDefaults(db)
	return db, nil
}

// SeedDefaults 空库时为每种语言插入一个默认分类
func SeedDefaults(db *gorm.DB) {
	var count int64
	db.Model(&model.Category{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.Category{
		{CategoryName: "Amategeko y'umuhanda", Description: "Ibibazo rusange ku mategeko y'umuhanda", Language: model.LanguageKinyarwanda},
		{CategoryName: "Traffic Rules", Description: "General traffic rules questions", Language: model.LanguageEnglish},
		{CategoryName: "Code de la route", Description: "Questions générales sur le code de la route", Language: model.LanguageFrench},
	}
	for _, c := range defaults {
		if err := db.Create(&c).Error; err != nil {
			appLogger.Log.Warn("Seed category failed", zap.String("name", c.CategoryName), zap.Error(err))
		}
	}
}
