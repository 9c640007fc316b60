package main

import (
	"nutrirec-go-worker/enums"
	"nutrirec-go-worker/services/recommend"
	"nutrirec-go-worker/structs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stubCrashAlert(t *testing.T) *int {
	t.Helper()
	calls := 0
	original := crashAlert
	crashAlert = func() { calls++ }
	t.Cleanup(func() { crashAlert = original })
	return &calls
}

func TestStartJobAlertsOnIsDie(t *testing.T) {
	calls := stubCrashAlert(t)
	var env structs.EnviromentModel
	service := recommend.NewRecommendationService(nil, env)

	assert.Panics(t, func() {
		startJob(service.Start, structs.RecommendationQueueParam{Type: enums.ProcessSingle, ChildID: 1, TaskID: 3, IsDie: true})
	})
	assert.Equal(t, 1, *calls)
}

func TestStartJobWithoutPanicSkipsAlert(t *testing.T) {
	calls := stubCrashAlert(t)
	start := func(param structs.RecommendationQueueParam) structs.ActivityLogJsonModel {
		return structs.ActivityLogJsonModel{TaskID: param.TaskID, Result: true}
	}

	result := startJob(start, structs.RecommendationQueueParam{TaskID: 4})

	assert.True(t, result.Result)
	assert.Equal(t, uint(4), result.TaskID)
	assert.Zero(t, *calls)
}
