package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"nutrirec-go-worker/database"
	"nutrirec-go-worker/enums"
	"nutrirec-go-worker/models"
	"nutrirec-go-worker/router"
	"nutrirec-go-worker/services"
	"nutrirec-go-worker/services/rabbitmq"
	"nutrirec-go-worker/services/recommend"
	"nutrirec-go-worker/services/trackLog"
	"nutrirec-go-worker/structs"
	"nutrirec-go-worker/utils"
	"sync"
	"time"

	logLib "nutrirec-go-worker/services/log"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

var queues = []string{enums.RecommendationQueue, enums.OptionsQueue}

// 測試時可替換
var crashAlert = crashEmailAlert

func main() {

	// 初始化 env
	var envService utils.EnvService
	envService.InitEnv()
	fmt.Println("參數初始化成功...")

	database.InitDatabasePool()
	store := database.NewStore(database.Mysql)
	_ = insertActivityLog(store, "schedule.go.job.init", "nutrirec-worker 初始化")
	trackLog.LogTrackInit()

	defer func() {
		// 發送 ELK
		var logService logLib.LogService
		logwr := logService.LoggerInit("main")
		logwr.WithFields(logrus.Fields{"task": "main", "name": "主程式"}).Error("worker shutdown")
		// 發送 email
		crashEmailAlert()

		database.Mysql.Close()
		fmt.Println("worker shutdown")
	}()

	route := router.Router()

	var wg sync.WaitGroup
	wg.Add(1)
	go route.Run(fmt.Sprintf(":%d", utils.EnvConfig.Router.Port))

	wg.Add(1)
	go RecommendationQueue(store)

	wg.Wait()
}

func RecommendationQueue(store *database.Store) {
	conn := rabbitmq.NewConnection(enums.ConnectionName, utils.EnvConfig.RabbitMQ.Domain, queues)

	if err := conn.Connect(); err != nil {
		panic(err)
	}
	if err := conn.BindQueue(); err != nil {
		panic(err)
	}
	deliveries, err := conn.Consume()
	if err != nil {
		panic(err)
	}

	handler := recommendationHandler(store)
	for q, d := range deliveries {
		go conn.HandleConsumedDeliveries(q, d, handler)
	}
	trackLog.Info(fmt.Sprintf(" [ %s ] %v Waiting for messages. To exit press CTRL+C", enums.ConnectionName, queues), true)
}

func recommendationHandler(store *database.Store) func(*rabbitmq.Connection, string, <-chan amqp.Delivery) {
	return func(c *rabbitmq.Connection, q string, deliveries <-chan amqp.Delivery) {
		for d := range deliveries {
			trackLog.Info(fmt.Sprintf("Queue[%s] 接受資料: %s\n", q, string(d.Body)), true)

			var param structs.RecommendationQueueParam
			if err := json.Unmarshal(d.Body, &param); err != nil {
				trackLog.Error(fmt.Sprintf("Queue[%s] 參數解析失敗: %s", q, err.Error()), true)
				continue
			}

			// 檢查queue是否正確
			if q != param.QueueType {
				notifyMismatchQueueApi(param.TaskID, q, param.QueueType)
				continue
			}

			_ = insertActivityLog(store, "schedule.go.job.received", fmt.Sprintf("(%d), queue name: %s, start...", param.TaskID, q))
			service := recommend.NewRecommendationService(store, *utils.EnvConfig)
			result := startJob(service.Start, param)

			if d.ReplyTo != "" {
				body, _ := json.Marshal(result)
				reply := rabbitmq.Message{
					Queue:         d.ReplyTo,
					ContentType:   "application/json",
					CorrelationID: d.CorrelationId,
					Body:          rabbitmq.MessageBody{Data: body, Type: param.Type},
				}
				if err := c.Publish(reply); err != nil {
					trackLog.Error(fmt.Sprintf("Queue[%s] 回覆失敗: %s", q, err.Error()), true)
				}
			}
		}
	}
}

// startJob 工作 goroutine 內 panic 不會跑到 main 的 defer，先在這裡發告警再往上拋
func startJob(start func(structs.RecommendationQueueParam) structs.ActivityLogJsonModel, param structs.RecommendationQueueParam) structs.ActivityLogJsonModel {
	defer func() {
		if r := recover(); r != nil {
			trackLog.Error(fmt.Sprintf("task_id %d panic: %v", param.TaskID, r), true)
			crashAlert()
			panic(r)
		}
	}()
	return start(param)
}

func crashEmailAlert() {
	api := utils.EnvConfig.Email.APIUrl
	if api == "" {
		return
	}
	if _, err := services.HttpRequest(http.MethodPost, api, nil, "body"); err != nil {
		trackLog.Error(fmt.Sprintf("crash email alert: %s", err.Error()), true)
	}
}

// 塞入執行紀錄的 log table
func insertActivityLog(store *database.Store, jobname string, data interface{}) error {

	activityLogJSON, _ := json.Marshal(data)

	location, err := time.LoadLocation(utils.EnvConfig.Recommend.Timezone)
	if err != nil {
		location = time.UTC
	}
	insertTime := time.Now().In(location)
	var activityLogEntity models.ActivityLog
	activityLogEntity.CreatedAt = &insertTime
	activityLogEntity.UpdatedAt = &insertTime
	activityLogEntity.Role = enums.SystemOperate
	activityLogEntity.LogName = jobname
	activityLogEntity.Description = "golang-worker log"
	activityLogEntity.Properties = string(activityLogJSON)

	if err := store.InsertActivityLog(&activityLogEntity); err != nil {
		trackLog.Error(err.Error(), false)
		return err
	}

	return nil
}

func notifyMismatchQueueApi(taskId uint, queue, queueType string) {
	endpoint := utils.EnvConfig.Server.AppAPI + enums.MismatchCallbackPath
	body := structs.MismatchQueueResponse{
		TaskId: taskId,
		Queue:  queue,
	}
	trackLog.Info(fmt.Sprintf("[MismatchQueue]queue發生錯誤, task_id: %d, mismatch queue: %s, queue_type: %s, callback url: %s", taskId, queue, queueType, endpoint), true)
	if _, err := services.HttpRequest(http.MethodPost, endpoint, nil, body); err != nil {
		trackLog.Error(err.Error(), true)
	}
}
