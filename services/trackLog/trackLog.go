package trackLog

import (
	"fmt"
	"nutrirec-go-worker/services/log"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logTracker *logrus.Entry
	mu         sync.RWMutex
)

func LogTrackInit() {
	var trackerService log.LogService
	temp := trackerService.LoggerInit("tracker")
	mu.Lock()
	logTracker = temp.WithFields(logrus.Fields{"task": "track", "name": "log追蹤"})
	mu.Unlock()
}

// Entry 尚未初始化時回傳只寫 stdout 的 logger
func Entry() *logrus.Entry {
	mu.RLock()
	defer mu.RUnlock()
	if logTracker != nil {
		return logTracker
	}
	logger := logrus.New()
	logger.Out = os.Stdout
	return logrus.NewEntry(logger)
}

func Info(message string, needWriteLog bool) {
	if needWriteLog {
		Entry().Info(message)
	}
	fmt.Println(message)
}

func Warn(message string, needWriteLog bool) {
	if needWriteLog {
		Entry().Warn(message)
	}
	fmt.Println(message)
}

func Error(message string, needWriteLog bool) {
	if needWriteLog {
		Entry().Error(message)
	}
	fmt.Println(message)
}
