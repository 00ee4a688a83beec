package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"interior-request-server/internal/config"
	"interior-request-server/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Models 返回需要自动迁移的全部模型，测试初始化也复用该列表。
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Category{},
		&model.Application{},
		&model.ApplicationImage{},
	}
}

func InitDB() {
	var err error
	cfg := config.Get()

	dialector, err := buildDialector(cfg.Database)
	if err != nil {
		logrus.Fatalf("❌ %v", err)
	}

	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormLogLevel(cfg.Server.Mode)),
		TranslateError: true,
	})
	if err != nil {
		logrus.Fatal("❌ 数据库连接失败: ", err)
	}

	// 获取底层 sql.DB 以配置连接池
	sqlDB, err := DB.DB()
	if err != nil {
		logrus.Fatal("❌ 无法获取 sql.DB: ", err)
	}

	if cfg.Database.Type == "mysql" || cfg.Database.Type == "postgres" {
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetMaxIdleConns(10)
	} else {
		// SQLite 建议单连接写
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := DB.AutoMigrate(Models()...); err != nil {
		logrus.Fatal("❌ 数据库迁移失败: ", err)
	}

	if err := SeedCategories(DB, cfg.Catalog.DefaultCategories); err != nil {
		logrus.Warnf("⚠️ 初始化默认分类失败: %v", err)
	}

	logrus.Infof("✅ 数据库(%s)连接成功，表结构已同步", cfg.Database.Type)
}

func buildDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Type {
	case "mysql":
		// 条件更新按匹配行数判断，状态未变化时也要返回 1
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.Name,
		)
		if cfg.SSL {
			dsn += "&tls=true"
		}
		return mysql.Open(dsn), nil
	case "postgres":
		sslMode := "disable"
		if cfg.SSL {
			sslMode = "require"
		}
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.Host,
			cfg.User,
			cfg.Password,
			cfg.Name,
			cfg.Port,
			sslMode,
		)
		return postgres.Open(dsn), nil
	case "", "sqlite":
		dbDir := filepath.Dir(cfg.Filename)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("无法创建数据库目录 '%s': %w", dbDir, err)
		}
		dsn := cfg.Filename + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("不支持的数据库类型: %s", cfg.Type)
	}
}

func gormLogLevel(mode string) gormlogger.LogLevel {
	if mode == "release" {
		return gormlogger.Error
	}
	return gormlogger.Warn
}

// SeedCategories 在分类表为空时写入默认分类。已有数据时不做任何修改。
func SeedCategories(gdb *gorm.DB, names []string) error {
	if len(names) == 0 {
		return nil
	}
	var count int64
	if err := gdb.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	categories := make([]model.Category, 0, len(names))
	for _, name := range names {
		categories = append(categories, model.Category{Name: name})
	}
	if err := gdb.Create(&categories).Error; err != nil {
		return err
	}
	logrus.Infof("✅ 已写入 %d 个默认分类", len(categories))
	return nil
}
