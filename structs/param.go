package structs

import (
	"github.com/go-playground/validator/v10"
)

var paramValidate = validator.New()

type RecommendationQueueParam struct {
	Type      string `json:"type" form:"type" validate:"required,oneof=SINGLE OPTIONS"`
	ChildID   int64  `json:"child_id" form:"child_id" validate:"required,gt=0"`
	Count     int    `json:"count" form:"count" validate:"gte=0,lte=10"`
	Motive    string `json:"motive" form:"motive" validate:"max=255"`
	ActorID   int64  `json:"actor_id" form:"actor_id"`
	Role      string `json:"role" form:"role"`
	TaskID    uint   `json:"task_id" form:"task_id"`
	Result    string `json:"result" form:"result"`
	IsDie     bool   `json:"is_die" form:"is_die"`
	QueueType string `json:"queue_type" form:"queue_type"`
}

// Validate 檢查 queue 傳入的參數
func (p RecommendationQueueParam) Validate() error {
	return paramValidate.Struct(p)
}

type MismatchQueueResponse struct {
	TaskId uint   `json:"task_id"`
	Queue  string `json:"queue"`
}
