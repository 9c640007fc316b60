package recommend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"nutrirec-go-worker/enums"
	"nutrirec-go-worker/models"
	"nutrirec-go-worker/services"
	"nutrirec-go-worker/services/log"
	"nutrirec-go-worker/services/metrics"
	"nutrirec-go-worker/structs"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	kindInvalidParam   = "InvalidParam"
	kindPersistFailure = "PersistFailure"
)

// RecommendationService 處理 recommendation queue 的一個工作
type RecommendationService struct {
	sync.Mutex
	repository       Repository
	config           structs.RecommendConfig
	concurrentAmount int
	appAPI           string
	param            structs.RecommendationQueueParam
	location         *time.Location
	created          []int64
	warned           int
	batchID          string
	Errors           []structs.ErrorModel

	Now    func() time.Time
	Logger func(childID int64) *logrus.Entry
	Notify func(endpoint string, body interface{}) error
}

func NewRecommendationService(repository Repository, env structs.EnviromentModel) *RecommendationService {
	location, err := time.LoadLocation(env.Recommend.Timezone)
	if err != nil || env.Recommend.Timezone == "" {
		location = time.UTC
	}
	var logService log.LogService
	return &RecommendationService{
		repository:       repository,
		config:           env.Recommend,
		concurrentAmount: env.ConcurrentAmount,
		appAPI:           env.Server.AppAPI,
		location:         location,
		Now:              time.Now,
		Logger:           logService.ChildLogger,
		Notify: func(endpoint string, body interface{}) error {
			_, err := services.HttpRequest(http.MethodPost, endpoint, nil, body)
			return err
		},
	}
}

// 處理資料的主要進入點
func (s *RecommendationService) Start(param structs.RecommendationQueueParam) structs.ActivityLogJsonModel {
	if param.IsDie {
		panic("recommendation worker asked to die")
	}
	s.param = param
	s.created = nil
	s.warned = 0
	s.batchID = ""
	s.Errors = nil
	started := time.Now()

	logwr := s.Logger(param.ChildID)

	if err := param.Validate(); err != nil {
		logwr.WithField("task_id", param.TaskID).Error("參數錯誤: ", err.Error())
		s.handleError(0, kindInvalidParam, err)
		return s.finish(0, logwr)
	}

	assembler := NewAssembler(s.repository, s.config)
	assembler.Now = func() time.Time { return s.Now().In(s.location) }
	assembler.ConcurrentAmount = s.concurrentAmount
	assembler.Logger = logwr

	requested := 1
	if param.Type == enums.ProcessSingle {
		logwr.WithField("task_id", param.TaskID).Info("處理方式: ", param.Type)
		bundle, err := assembler.Generate(param.ChildID, param.Motive)
		if err != nil {
			s.handleError(0, string(KindOf(err)), err)
		} else {
			s.save(bundle, logwr)
		}
	}

	if param.Type == enums.ProcessOptions {
		requested = param.Count
		if requested == 0 {
			requested = enums.DefaultOptionCount
		}
		logwr.WithFields(logrus.Fields{"task_id": param.TaskID, "count": requested}).Info("處理方式: ", param.Type)

		result := assembler.GenerateOptions(param.ChildID, requested)
		s.batchID = result.BatchID
		for _, failure := range result.Failures {
			metrics.RecordFailed(failure.Kind)
			s.Lock()
			s.Errors = append(s.Errors, failure)
			s.Unlock()
		}
		for i := range result.Options {
			s.save(&result.Options[i], logwr)
		}
	}

	metrics.ObserveJob(param.Type, time.Since(started).Seconds())
	return s.finish(requested, logwr)
}

// save 寫入推薦，失敗時記錄到 Errors
func (s *RecommendationService) save(bundle *structs.RecommendationBundle, logwr *logrus.Entry) {
	audit := s.auditEntry(bundle)
	if err := s.repository.SaveRecommendation(bundle, audit); err != nil {
		logwr.WithField("motive", bundle.Recommendation.Motive).Error("寫入推薦失敗: ", err.Error())
		s.handleError(0, kindPersistFailure, err)
		return
	}

	metrics.RecordGenerated(s.param.Type)
	s.Lock()
	s.created = append(s.created, bundle.Recommendation.ID)
	if !bundle.Provenance.Validation.Valid {
		s.warned++
		metrics.RecordWarned()
	}
	s.Unlock()
}

func (s *RecommendationService) auditEntry(bundle *structs.RecommendationBundle) *models.ActivityLog {
	properties, _ := json.Marshal(map[string]interface{}{
		"child_id":       bundle.Recommendation.ChildID,
		"motive":         bundle.Recommendation.Motive,
		"batch_id":       bundle.Recommendation.BatchID,
		"total_calories": bundle.Recommendation.TotalCalories,
		"total_protein":  bundle.Recommendation.TotalProtein,
		"valid":          bundle.Provenance.Validation.Valid,
	})
	insertTime := s.Now().In(s.location)
	return &models.ActivityLog{
		ActorID:     s.param.ActorID,
		Role:        s.actorRole(),
		Action:      enums.ActionCreate,
		Module:      enums.ModuleRecommendation,
		LogName:     enums.ModuleRecommendation,
		Description: fmt.Sprintf("Recommendation created for child %d", bundle.Recommendation.ChildID),
		Properties:  string(properties),
		CreatedAt:   &insertTime,
		UpdatedAt:   &insertTime,
	}
}

func (s *RecommendationService) actorRole() string {
	if s.param.Role == "" {
		return enums.SystemOperate
	}
	return s.param.Role
}

// finish 寫入工作紀錄並通知 app
func (s *RecommendationService) finish(requested int, logwr *logrus.Entry) structs.ActivityLogJsonModel {
	model := s.activityLogModel(requested)
	if err := s.insertActivityLog(model); err != nil {
		logwr.Error("寫入工作紀錄失敗: ", err.Error())
	}
	s.JobDoneNotify(logwr)
	return model
}

func (s *RecommendationService) activityLogModel(requested int) structs.ActivityLogJsonModel {
	var activityLogJSONModel structs.ActivityLogJsonModel
	activityLogJSONModel.Type = s.param.Type
	activityLogJSONModel.TaskID = s.param.TaskID
	activityLogJSONModel.ChildID = s.param.ChildID
	activityLogJSONModel.BatchID = s.batchID
	activityLogJSONModel.Created = s.created

	if child, err := s.repository.FindChild(s.param.ChildID); err == nil && child != nil {
		activityLogJSONModel.ChildName = child.FullName()
	}

	activityLogJSONModel.Statistic.Requested = requested
	activityLogJSONModel.Statistic.OK = len(s.created)
	activityLogJSONModel.Statistic.Fail = len(s.Errors)
	activityLogJSONModel.Statistic.Warned = s.warned

	// 批次只要有一個成功就算成功
	activityLogJSONModel.Result = len(s.created) > 0
	if activityLogJSONModel.Result && len(s.Errors) == 0 {
		activityLogJSONModel.Message = "ok"
	} else if activityLogJSONModel.Result {
		activityLogJSONModel.Message = fmt.Sprintf("%d of %d options generated", len(s.created), requested)
		activityLogJSONModel.Messages = s.Errors
	} else if len(s.Errors) > 0 {
		activityLogJSONModel.Message = s.Errors[0].ErrorMessage
		activityLogJSONModel.Messages = s.Errors
	}
	return activityLogJSONModel
}

// 塞入執行紀錄的 log table
func (s *RecommendationService) insertActivityLog(model structs.ActivityLogJsonModel) error {
	activityLogJSON, _ := json.Marshal(model)

	insertTime := s.Now().In(s.location)
	var activityLogEntity models.ActivityLog
	activityLogEntity.CreatedAt = &insertTime
	activityLogEntity.UpdatedAt = &insertTime
	activityLogEntity.ActorID = s.param.ActorID
	activityLogEntity.Role = s.actorRole()
	activityLogEntity.Module = enums.ModuleRecommendation
	activityLogEntity.SubjectID = s.param.ChildID
	activityLogEntity.LogName = enums.RecommendationLogName
	activityLogEntity.Description = "兒童營養推薦"
	activityLogEntity.Properties = string(activityLogJSON)

	s.param.Result = string(activityLogJSON)

	return s.repository.InsertActivityLog(&activityLogEntity)
}

func (s *RecommendationService) JobDoneNotify(logwr *logrus.Entry) {
	if s.appAPI == "" {
		return
	}
	endpoint := s.appAPI + enums.JobCallbackPath
	logwr.WithField("task_id", s.param.TaskID).Info("callback url ", endpoint)
	if err := s.Notify(endpoint, s.param); err != nil {
		logwr.Error("callback 失敗: ", err.Error())
	}
}

func (s *RecommendationService) handleError(variant int, kind string, err error) {
	errorModel := structs.ErrorModel{
		ChildID:      s.param.ChildID,
		Variant:      variant,
		Kind:         kind,
		ErrorMessage: err.Error(),
	}
	metrics.RecordFailed(kind)
	s.Lock()
	s.Errors = append(s.Errors, errorModel)
	s.Unlock()
}

// Param 最後一次處理的參數，Result 帶有工作紀錄 JSON
func (s *RecommendationService) Param() structs.RecommendationQueueParam {
	return s.param
}
