package cmn

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var (
	GormDB *gorm.DB
)

// InitDB 初始化数据库模块，完成连接池、表结构迁移与视图重建
func InitDB() {
	host := viper.GetString("dbms.host")
	port := viper.GetString("dbms.port")
	user := viper.GetString("dbms.user")
	pwd := viper.GetString("dbms.pwd")
	dbname := viper.GetString("dbms.db")
	if host == "" || port == "" || user == "" || pwd == "" || dbname == "" {
		logger.Fatal("[ FAIL ] db config not found")
		return
	}

	dsn := fmt.Sprintf("user=%v password=%v dbname=%v host=%v port=%v sslmode=disable TimeZone=Asia/Shanghai", user, pwd, dbname, host, port)

	var err error
	GormDB, err = initDBPool(dsn)
	if err != nil {
		logger.Fatal("[ FAIL ] init db pool failed: " + err.Error())
		return
	}

	// 视图依赖表结构，迁移前先全部删除，迁移后重建
	err = dropAllViews(GormDB)
	if err != nil {
		logger.Fatal("[ FAIL ] drop all views failed: " + err.Error())
	}

	err = initTable(GormDB)
	if err != nil {
		logger.Fatal("[ FAIL ] init table failed: " + err.Error())
	}

	err = initView(GormDB)
	if err != nil {
		logger.Fatal("[ FAIL ] init view failed: " + err.Error())
	}

	MiniLogger.Info("[ OK ] db module initialized")

	return
}

// 初始化数据库连接池
func initDBPool(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Error),
	})
	if err != nil {
		logger.Error("connect to pg failed: " + err.Error())
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("get sql.DB failed: " + err.Error())
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(time.Minute)

	if err := sqlDB.Ping(); err != nil {
		logger.Error("ping pg failed: " + err.Error())
		return nil, err
	}

	logger.Info("PG pool initialized")

	return db, nil
}

// 初始化表
func initTable(db *gorm.DB) error {
	err := db.AutoMigrate(
		&TUser{},
		&TSmsCodes{},
		&TUserDestiny{},
		&TUserPoints{},
		&TPointsLog{},
		&TUserCheckIn{},
		&TStickLot{},
		&TStickDrawLog{})
	if err != nil {
		logger.Error("auto migrate failed: " + err.Error())
		return err
	}

	logger.Info("PG table initialized")
	return nil
}

// 初始化视图
func initView(db *gorm.DB) error {
	// v_user_points 视图，排行榜查询直接使用
	q := db.
		Table("t_user_points AS up").
		Select(`
        up.user_id,
        u.nick_name,
        up.points,
        up.updated_at
    `).
		Joins("LEFT JOIN t_user AS u ON up.user_id = u.id").
		Where("u.status = ?", "00")

	err := db.Migrator().CreateView(
		VUserPoints{}.TableName(),
		gorm.ViewOption{Query: q},
	)
	if err != nil {
		logger.Error("create v_user_points failed: " + err.Error())
		return err
	}

	logger.Info("PG view initialized")

	return nil
}

// 删除当前 schema 中的所有视图
func dropAllViews(db *gorm.DB) error {
	type ViewInfo struct {
		ViewName string
	}

	var views []ViewInfo
	err := db.Raw(`
		SELECT table_name AS view_name
		FROM information_schema.views
		WHERE table_schema = current_schema()
	`).Scan(&views).Error

	if err != nil {
		logger.Error("failed to query views", zap.Error(err))
		return err
	}

	for _, view := range views {
		logger.Info("dropping view", zap.String("view", view.ViewName))
		dropSQL := fmt.Sprintf(`DROP VIEW IF EXISTS "%s" CASCADE`, view.ViewName)
		if err := db.Exec(dropSQL).Error; err != nil {
			logger.Error("failed to drop view", zap.String("view", view.ViewName), zap.Error(err))
			return err
		}
	}

	logger.Info("all views dropped", zap.Int("count", len(views)))
	return nil
}
