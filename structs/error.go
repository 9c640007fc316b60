package structs

type ErrorModel struct {
	ChildID      int64  `json:"child_id"`
	Variant      int    `json:"variant,omitempty"`
	Kind         string `json:"kind"`
	ErrorMessage string `json:"error_message"`
}
