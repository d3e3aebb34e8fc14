package instance

import (
	"time"

	"flowdesk/domain/flow"
	"flowdesk/domain/task"
	"flowdesk/misc"
)

type InstanceStatus string

const (
	InstanceStatusPending   = InstanceStatus("PENDING")
	InstanceStatusRunning   = InstanceStatus("RUNNING")
	InstanceStatusCompleted = InstanceStatus("COMPLETED")
	InstanceStatusFailed    = InstanceStatus("FAILED")
	InstanceStatusCancelled = InstanceStatus("CANCELLED")
)

// WorkflowInstance is one execution record against a workflow. StartedAt is
// populated only by the start transition, so it doubles as a marker of
// whether the instance has ever been running.
type WorkflowInstance struct {
	ID     string         `json:"id" gorm:"primary_key;type:varchar(36)"`
	Status InstanceStatus `json:"status" gorm:"type:varchar(10) NOT NULL"`

	StartedAt  *time.Time      `json:"startedAt" sql:"type:DATETIME(6)"`
	FinishedAt *time.Time      `json:"finishedAt" sql:"type:DATETIME(6)"`
	Variables  misc.JSONObject `json:"variables" gorm:"type:text"`

	WorkflowID string `json:"workflowId" gorm:"type:varchar(36) NOT NULL;index"`
	UserID     string `json:"userId" gorm:"type:varchar(36) NOT NULL;index"`

	CreateTime time.Time `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
	UpdateTime time.Time `json:"updateTime" sql:"type:DATETIME(6) NOT NULL"`
}

type InstanceCreation struct {
	WorkflowID string          `json:"workflowId" binding:"required,uuid"`
	Variables  misc.JSONObject `json:"variables"`
}

// InstanceUpdating overwrites status/variables/finishedAt directly,
// bypassing the start/cancel state machine. The guarded transitions are
// conveniences, not the only mutation path.
type InstanceUpdating struct {
	Status     *InstanceStatus `json:"status" binding:"omitempty,oneof=PENDING RUNNING COMPLETED FAILED CANCELLED"`
	Variables  misc.JSONObject `json:"variables"`
	FinishedAt *time.Time      `json:"finishedAt"`
}

type InstanceQuery struct {
	WorkflowID string `form:"workflowId" binding:"omitempty,uuid"`
}

// InstanceRecord is the list projection: instance plus a summary of its
// parent workflow and its full task list.
type InstanceRecord struct {
	WorkflowInstance
	Workflow flow.WorkflowSummary `json:"workflow"`
	Tasks    []task.WorkflowTask  `json:"tasks"`
}

// InstanceDetail is the single-fetch projection with the full parent workflow.
type InstanceDetail struct {
	WorkflowInstance
	Workflow flow.Workflow       `json:"workflow"`
	Tasks    []task.WorkflowTask `json:"tasks"`
}
