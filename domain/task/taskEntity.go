package task

import (
	"time"

	"flowdesk/misc"
)

type TaskStatus string

const (
	TaskStatusPending    = TaskStatus("PENDING")
	TaskStatusInProgress = TaskStatus("IN_PROGRESS")
	TaskStatusCompleted  = TaskStatus("COMPLETED")
	TaskStatusFailed     = TaskStatus("FAILED")
)

// WorkflowTask is a passive child record of one instance. The API surface
// only ever returns tasks embedded in instance reads; they are batch-seeded.
type WorkflowTask struct {
	ID          string     `json:"id" gorm:"primary_key;type:varchar(36)"`
	Name        string     `json:"name" gorm:"type:varchar(100) NOT NULL"`
	Description string     `json:"description" gorm:"type:varchar(500)"`
	Status      TaskStatus `json:"status" gorm:"type:varchar(15) NOT NULL"`

	AssignedTo  string          `json:"assignedTo" gorm:"type:varchar(36)"`
	DueDate     *time.Time      `json:"dueDate" sql:"type:DATETIME(6)"`
	CompletedAt *time.Time      `json:"completedAt" sql:"type:DATETIME(6)"`
	Result      misc.JSONObject `json:"result" gorm:"type:text"`

	InstanceID string `json:"instanceId" gorm:"type:varchar(36) NOT NULL;index"`

	CreateTime time.Time `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
	UpdateTime time.Time `json:"updateTime" sql:"type:DATETIME(6) NOT NULL"`
}

type TaskCreation struct {
	Name        string     `json:"name" binding:"required,lte=100"`
	Description string     `json:"description" binding:"omitempty,lte=500"`
	AssignedTo  string     `json:"assignedTo"`
	DueDate     *time.Time `json:"dueDate"`
}
