package utils

import (
	"fmt"
	"nutrirec-go-worker/structs"
	"strings"

	"github.com/spf13/viper"
)

var EnvConfig *structs.EnviromentModel

type EnvService struct{}

func (e *EnvService) InitEnv() {
	e.setDefaults()
	e.loadConfig()
	e.configToModel()
}

func (e *EnvService) setDefaults() {
	viper.SetDefault("concurrentAmount", 4)
	viper.SetDefault("router.port", 8080)
	viper.SetDefault("database.client", "mysql")
	viper.SetDefault("database.max_idle", 5)
	viper.SetDefault("database.max_open_conn", 20)
	viper.SetDefault("database.max_life_time", "5m")
	viper.SetDefault("recommend.max_items", 5)
	viper.SetDefault("recommend.optimizer.max_calories", 1.2)
	viper.SetDefault("recommend.optimizer.max_protein", 1.3)
	viper.SetDefault("recommend.optimizer.satisfied", 0.8)
	viper.SetDefault("recommend.validator.min_calories", 0.7)
	viper.SetDefault("recommend.validator.max_calories", 1.3)
	viper.SetDefault("recommend.validator.min_protein", 0.8)
	viper.SetDefault("recommend.timezone", "America/La_Paz")
}

func (e *EnvService) loadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {

			// 找不到 config.yml 的話就抓取環境變數
			viper.AutomaticEnv()
			viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		} else {

			// 有找到 config.yml 但是發生了其他未知的錯誤
			panic(fmt.Errorf("Fatal error config file: %s \n", err))
		}
	}
}

func (e *EnvService) configToModel() {
	var config structs.EnviromentModel
	config.Database.Client = viper.GetString("database.client")
	config.Database.Host = viper.GetString("database.host")
	config.Database.User = viper.GetString("database.user")
	config.Database.Password = viper.GetString("database.password")
	config.Database.Db = viper.GetString("database.name")
	config.Database.MaxIdle = uint(viper.GetInt("database.max_idle"))
	config.Database.MaxOpenConn = uint(viper.GetInt("database.max_open_conn"))
	config.Database.MaxLifeTime = viper.GetString("database.max_life_time")
	config.Database.Params = viper.GetString("database.params")
	config.Database.Port = viper.GetString("database.port")
	config.Database.LogEnable = viper.GetInt("database.log_enable")
	config.ConcurrentAmount = viper.GetInt("concurrentAmount")
	config.RabbitMQ.Domain = viper.GetString("rabbitmq.domain")
	config.Log.ElkEnable = viper.GetInt("log.elk.enable")
	config.Log.ElkIndex = viper.GetString("log.elk.index")
	config.Log.ElkURL = viper.GetString("log.elk.url")
	config.Log.LogstashEnable = viper.GetInt("log.logstash.enable")
	config.Log.LogstashURL = viper.GetString("log.logstash.url")
	config.Log.LogstashIndex = viper.GetString("log.logstash.index")
	config.Email.APIUrl = viper.GetString("email.api_url")
	config.Server.AppAPI = viper.GetString("server.app_api")
	config.Router.Port = viper.GetInt("router.port")
	config.Recommend.MaxItems = viper.GetInt("recommend.max_items")
	config.Recommend.OptimizerMaxCalories = viper.GetFloat64("recommend.optimizer.max_calories")
	config.Recommend.OptimizerMaxProtein = viper.GetFloat64("recommend.optimizer.max_protein")
	config.Recommend.OptimizerSatisfied = viper.GetFloat64("recommend.optimizer.satisfied")
	config.Recommend.ValidatorMinCalories = viper.GetFloat64("recommend.validator.min_calories")
	config.Recommend.ValidatorMaxCalories = viper.GetFloat64("recommend.validator.max_calories")
	config.Recommend.ValidatorMinProtein = viper.GetFloat64("recommend.validator.min_protein")
	config.Recommend.Timezone = viper.GetString("recommend.timezone")
	EnvConfig = &config
}
