package structs

type ActivityLogJsonModel struct {
	Type      string         `json:"type"`
	TaskID    uint           `json:"task_id"`
	ChildID   int64          `json:"child_id,omitempty"`
	ChildName string         `json:"child_name,omitempty"`
	BatchID   string         `json:"batch_id,omitempty"`
	Result    bool           `json:"result"`
	Statistic StatisticModel `json:"statistic"`
	Message   string         `json:"message"`
	Messages  []ErrorModel   `json:"messages"`
	Created   []int64        `json:"created"`
}

type StatisticModel struct {
	Requested int `json:"requested"`
	OK        int `json:"ok"`
	Fail      int `json:"fail"`
	Warned    int `json:"warned"`
}
