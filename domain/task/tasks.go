package task

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// SeedInstanceTasks bulk-inserts PENDING tasks under one instance. The only
// write path for tasks; there are no task mutation endpoints.
func SeedInstanceTasks(tx *gorm.DB, instanceId string, creations []TaskCreation) ([]WorkflowTask, error) {
	now := time.Now().Round(time.Millisecond)
	tasks := make([]WorkflowTask, 0, len(creations))
	for _, c := range creations {
		t := WorkflowTask{
			ID:          uuid.New().String(),
			Name:        c.Name,
			Description: c.Description,
			Status:      TaskStatusPending,
			AssignedTo:  c.AssignedTo,
			DueDate:     c.DueDate,
			InstanceID:  instanceId,
			CreateTime:  now,
			UpdateTime:  now,
		}
		if err := tx.Create(&t).Error; err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// ListTasksOfInstance returns one instance's tasks, oldest first.
func ListTasksOfInstance(tx *gorm.DB, instanceId string) ([]WorkflowTask, error) {
	tasks := []WorkflowTask{}
	if err := tx.Where(&WorkflowTask{InstanceID: instanceId}).Order("create_time ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListTasksOfInstances loads the tasks of many instances in one query,
// grouped by instance id.
func ListTasksOfInstances(tx *gorm.DB, instanceIds []string) (map[string][]WorkflowTask, error) {
	result := map[string][]WorkflowTask{}
	if len(instanceIds) == 0 {
		return result, nil
	}
	var tasks []WorkflowTask
	if err := tx.Where("instance_id IN (?)", instanceIds).Order("create_time ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	for _, t := range tasks {
		result[t.InstanceID] = append(result[t.InstanceID], t)
	}
	return result, nil
}
