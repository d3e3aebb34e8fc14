package flow

import "time"

type WorkflowStatus string

const (
	WorkflowStatusDraft    = WorkflowStatus("DRAFT")
	WorkflowStatusActive   = WorkflowStatus("ACTIVE")
	WorkflowStatusInactive = WorkflowStatus("INACTIVE")
)

// Workflow is a named process template. BpmnXml is carried verbatim and
// never interpreted. Only ACTIVE workflows accept new instances.
type Workflow struct {
	ID          string         `json:"id" gorm:"primary_key;type:varchar(36)"`
	Name        string         `json:"name" gorm:"type:varchar(100) NOT NULL"`
	Description string         `json:"description" gorm:"type:varchar(500)"`
	BpmnXml     string         `json:"bpmnXml" gorm:"type:mediumtext"`
	Status      WorkflowStatus `json:"status" gorm:"type:varchar(10) NOT NULL"`
	UserID      string         `json:"userId" gorm:"type:varchar(36) NOT NULL;index"`

	CreateTime time.Time `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
	UpdateTime time.Time `json:"updateTime" sql:"type:DATETIME(6) NOT NULL"`
}

// WorkflowSummary is the parent-workflow projection embedded in instance lists.
type WorkflowSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (w Workflow) Summary() WorkflowSummary {
	return WorkflowSummary{ID: w.ID, Name: w.Name, Description: w.Description}
}

type WorkflowCreation struct {
	Name        string `json:"name" binding:"required,gte=3,lte=100"`
	Description string `json:"description" binding:"omitempty,lte=500"`
	BpmnXml     string `json:"bpmnXml"`
}

// WorkflowUpdating is a partial update; nil fields are left unchanged.
// Status accepts any member of the enum, there are no transition rules on
// workflow status itself.
type WorkflowUpdating struct {
	Name        *string         `json:"name" binding:"omitempty,gte=3,lte=100"`
	Description *string         `json:"description" binding:"omitempty,lte=500"`
	BpmnXml     *string         `json:"bpmnXml"`
	Status      *WorkflowStatus `json:"status" binding:"omitempty,oneof=DRAFT ACTIVE INACTIVE"`
}
