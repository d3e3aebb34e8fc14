package flow

import (
	"time"

	"flowdesk/persistence"
	"flowdesk/session"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

var (
	QueryWorkflowsFunc = QueryWorkflows
	DetailWorkflowFunc = DetailWorkflow
	CreateWorkflowFunc = CreateWorkflow
	UpdateWorkflowFunc = UpdateWorkflow
	DeleteWorkflowFunc = DeleteWorkflow
)

// QueryWorkflows returns the caller's workflows, newest first. Entities of
// other users are invisible by construction.
func QueryWorkflows(sec *session.Session) (*[]Workflow, error) {
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)
	var workflows []Workflow
	if err := db.Where(&Workflow{UserID: sec.Identity.ID}).Order("create_time DESC").Find(&workflows).Error; err != nil {
		return nil, err
	}
	return &workflows, nil
}

func DetailWorkflow(id string, sec *session.Session) (*Workflow, error) {
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)
	workflow := Workflow{}
	if err := db.Where(&Workflow{ID: id, UserID: sec.Identity.ID}).First(&workflow).Error; err != nil {
		return nil, err
	}
	return &workflow, nil
}

func CreateWorkflow(creation *WorkflowCreation, sec *session.Session) (*Workflow, error) {
	now := time.Now().Round(time.Millisecond)
	workflow := Workflow{
		ID:          uuid.New().String(),
		Name:        creation.Name,
		Description: creation.Description,
		BpmnXml:     creation.BpmnXml,
		Status:      WorkflowStatusDraft,
		UserID:      sec.Identity.ID,
		CreateTime:  now,
		UpdateTime:  now,
	}
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)
	if err := db.Create(&workflow).Error; err != nil {
		return nil, err
	}
	return &workflow, nil
}

func UpdateWorkflow(id string, updating *WorkflowUpdating, sec *session.Session) (*Workflow, error) {
	workflow := Workflow{}
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&Workflow{ID: id, UserID: sec.Identity.ID}).First(&workflow).Error; err != nil {
			return err
		}

		changes := map[string]interface{}{"update_time": time.Now().Round(time.Millisecond)}
		if updating.Name != nil {
			changes["name"] = *updating.Name
		}
		if updating.Description != nil {
			changes["description"] = *updating.Description
		}
		if updating.BpmnXml != nil {
			changes["bpmn_xml"] = *updating.BpmnXml
		}
		if updating.Status != nil {
			changes["status"] = *updating.Status
		}
		if err := tx.Model(&Workflow{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return err
		}
		return tx.Where(&Workflow{ID: id}).First(&workflow).Error
	})
	if err != nil {
		return nil, err
	}
	return &workflow, nil
}

// DeleteWorkflow hard-deletes a workflow. Existing instances keep their
// workflowId reference, there is no cascade.
func DeleteWorkflow(id string, sec *session.Session) error {
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)
	return db.Transaction(func(tx *gorm.DB) error {
		workflow := Workflow{}
		if err := tx.Where(&Workflow{ID: id, UserID: sec.Identity.ID}).First(&workflow).Error; err != nil {
			return err
		}
		return tx.Delete(&Workflow{}, "id = ?", id).Error
	})
}
