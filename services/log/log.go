package log

import (
	"fmt"
	"net"
	"nutrirec-go-worker/utils"
	"os"
	"path"
	"sync"
	"time"

	logrustash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/elastic/go-elasticsearch/v7"
	"github.com/sirupsen/logrus"
	"gopkg.in/go-extras/elogrus.v7"
)

const (
	hookHost              = "nutrirec-golang-worker"
	RecommendationSubject = "recommendation"
)

type LogService struct{}

type cachedLogger struct {
	date   string
	logger *logrus.Logger
	file   *os.File
}

// 同一個 subject 當天只開一次檔案與 hook
var (
	loggers   = make(map[string]*cachedLogger)
	loggersMu sync.Mutex
)

// LoggerInit 以 subject 取得當日的 logger，例如 recommendation 或 tracker
func (l *LogService) LoggerInit(subject string) *logrus.Logger {
	now := time.Now()
	date := now.Format("2006-01-02")

	loggersMu.Lock()
	defer loggersMu.Unlock()

	if cached, ok := loggers[subject]; ok {
		if cached.date == date {
			return cached.logger
		}
		// 換日，關掉前一天的檔案
		if cached.file != nil {
			cached.file.Close()
		}
	}

	logger, file := newLogger(subject, now)
	loggers[subject] = &cachedLogger{date: date, logger: logger, file: file}
	return logger
}

func newLogger(subject string, now time.Time) (*logrus.Logger, *os.File) {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	src, err := openLogFile(subject, now)
	if err != nil {
		fmt.Println(err.Error())
	} else {
		logger.Out = src
	}

	env := utils.EnvConfig
	if env == nil {
		return logger, src
	}

	if env.Log.ElkEnable == 1 {
		client, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: []string{env.Log.ElkURL},
		})
		if err != nil {
			logger.Debug(err.Error())
		} else if hook, err := elogrus.NewAsyncElasticHook(client, hookHost, logrus.DebugLevel, env.Log.ElkIndex); err != nil {
			logger.Debug(err.Error())
		} else {
			logger.Hooks.Add(hook)
		}
	}

	if env.Log.LogstashEnable == 1 {
		conn, err := net.Dial("udp", env.Log.LogstashURL)
		if err != nil {
			logger.Debug(err)
		} else {
			hook := logrustash.New(conn, logrustash.DefaultFormatter(logrus.Fields{"type": hookHost}))
			logger.Hooks.Add(hook)
		}
	}

	return logger, src
}

// ChildLogger 推薦流程共用一個當日檔案，以 child_id 欄位區分
func (l *LogService) ChildLogger(childID int64) *logrus.Entry {
	return l.LoggerInit(RecommendationSubject).WithFields(logrus.Fields{"task": "recommendation", "child_id": childID})
}

func openLogFile(subject string, now time.Time) (*os.File, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	logFilePath := path.Join(dir, "logs", now.Format("2006-01-02"))
	if err := os.MkdirAll(logFilePath, 0777); err != nil {
		return nil, err
	}
	fileName := path.Join(logFilePath, subject+".log")
	return os.OpenFile(fileName, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
}
