package database

import (
	"fmt"
	"nutrirec-go-worker/utils"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/mysql"
)

var Mysql *gorm.DB

// InitDatabasePool 依 database.* 設定建立連線池
func InitDatabasePool() {
	config := utils.EnvConfig.Database
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", config.User, config.Password, config.Host, config.Port, config.Db, config.Params)

	db, err := gorm.Open(config.Client, dsn)
	if err != nil {
		panic(fmt.Errorf("資料庫連線失敗: %w", err))
	}

	db.DB().SetMaxIdleConns(int(config.MaxIdle))
	db.DB().SetMaxOpenConns(int(config.MaxOpenConn))
	if lifeTime, err := time.ParseDuration(config.MaxLifeTime); err == nil {
		db.DB().SetConnMaxLifetime(lifeTime)
	}
	db.LogMode(config.LogEnable == 1)

	Mysql = db
}

// Ping 給 check-live 使用
func Ping() error {
	if Mysql == nil {
		return fmt.Errorf("database pool not initialized")
	}
	return Mysql.DB().Ping()
}
