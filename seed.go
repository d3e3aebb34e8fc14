package main

import (
	"context"
	"time"

	"flowdesk/account"
	"flowdesk/common"
	"flowdesk/domain/flow"
	"flowdesk/domain/instance"
	"flowdesk/domain/task"
	"flowdesk/misc"
	"flowdesk/persistence"
	"flowdesk/session"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"
)

const demoBpmnXml = `<?xml version="1.0" encoding="UTF-8"?>
<definitions xmlns="http://www.omg.org/spec/BPMN/20100524/MODEL">
  <process id="approval-process" name="Approval Process">
    <startEvent id="start" />
    <userTask id="review" name="Review Request" />
    <userTask id="approve" name="Approve Request" />
    <endEvent id="end" />
  </process>
</definitions>`

// seedDemoData resets the database content and loads demo accounts,
// workflows, instances and tasks.
func seedDemoData(ds *persistence.DataSourceManager) error {
	db := ds.GormDB(context.Background())

	return db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&task.WorkflowTask{}, &instance.WorkflowInstance{}, &flow.Workflow{}, &account.User{}} {
			if err := tx.Delete(model).Error; err != nil {
				return errors.Wrap(err, "clean existing data")
			}
		}

		secret, err := account.HashSecret("Password123")
		if err != nil {
			return err
		}
		now := time.Now().Round(time.Millisecond)

		adminUser := account.User{ID: uuid.New().String(), Email: "admin@flowdesk.local", Secret: secret,
			Name: "Admin User", Role: session.RoleAdmin, IsActive: true, CreateTime: now, UpdateTime: now}
		regularUser := account.User{ID: uuid.New().String(), Email: "user@flowdesk.local", Secret: secret,
			Name: "Regular User", Role: session.RoleUser, IsActive: true, CreateTime: now, UpdateTime: now}
		for _, u := range []*account.User{&adminUser, &regularUser} {
			if err := tx.Create(u).Error; err != nil {
				return errors.Wrap(err, "create users")
			}
		}

		approval := flow.Workflow{ID: uuid.New().String(), Name: "Purchase Approval",
			Description: "Approve purchase requests", Status: flow.WorkflowStatusActive,
			BpmnXml: demoBpmnXml, UserID: adminUser.ID, CreateTime: now, UpdateTime: now}
		onboarding := flow.Workflow{ID: uuid.New().String(), Name: "Employee Onboarding",
			Description: "Onboard new employees", Status: flow.WorkflowStatusActive,
			UserID: adminUser.ID, CreateTime: now, UpdateTime: now}
		orders := flow.Workflow{ID: uuid.New().String(), Name: "Order Processing",
			Description: "Process customer orders", Status: flow.WorkflowStatusDraft,
			UserID: regularUser.ID, CreateTime: now, UpdateTime: now}
		for _, w := range []*flow.Workflow{&approval, &onboarding, &orders} {
			if err := tx.Create(w).Error; err != nil {
				return errors.Wrap(err, "create workflows")
			}
		}

		running := instance.WorkflowInstance{ID: uuid.New().String(), Status: instance.InstanceStatusRunning,
			StartedAt: &now, Variables: misc.JSONObject{"requestId": "REQ-001", "amount": 5000, "requester": "John Doe"},
			WorkflowID: approval.ID, UserID: adminUser.ID, CreateTime: now, UpdateTime: now}
		completed := instance.WorkflowInstance{ID: uuid.New().String(), Status: instance.InstanceStatusCompleted,
			StartedAt: &now, FinishedAt: &now,
			Variables:  misc.JSONObject{"requestId": "REQ-002", "amount": 1500, "requester": "Jane Smith"},
			WorkflowID: approval.ID, UserID: adminUser.ID, CreateTime: now, UpdateTime: now}
		pending := instance.WorkflowInstance{ID: uuid.New().String(), Status: instance.InstanceStatusPending,
			Variables:  misc.JSONObject{"employeeName": "Alice Johnson", "department": "Engineering"},
			WorkflowID: onboarding.ID, UserID: adminUser.ID, CreateTime: now, UpdateTime: now}
		for _, r := range []*instance.WorkflowInstance{&running, &completed, &pending} {
			if err := tx.Create(r).Error; err != nil {
				return errors.Wrap(err, "create instances")
			}
		}

		reviewDue := now.Add(2 * 24 * time.Hour)
		setupDue := now.Add(5 * 24 * time.Hour)
		if _, err := task.SeedInstanceTasks(tx, running.ID, []task.TaskCreation{
			{Name: "Review Request", Description: "Review the purchase request"},
			{Name: "Approve Request", Description: "Approve or reject the request", AssignedTo: adminUser.ID, DueDate: &reviewDue},
		}); err != nil {
			return errors.Wrap(err, "create tasks")
		}
		if _, err := task.SeedInstanceTasks(tx, pending.ID, []task.TaskCreation{
			{Name: "Setup Equipment", Description: "Prepare laptop and accounts", DueDate: &setupDue},
		}); err != nil {
			return errors.Wrap(err, "create tasks")
		}

		common.Log.Infof("seeded demo accounts %s / %s (password: Password123)", adminUser.Email, regularUser.Email)
		return nil
	})
}
