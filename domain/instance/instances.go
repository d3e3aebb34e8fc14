package instance

import (
	"time"

	"flowdesk/bizerror"
	"flowdesk/domain/flow"
	"flowdesk/domain/task"
	"flowdesk/persistence"
	"flowdesk/session"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

var (
	QueryInstancesFunc = QueryInstances
	DetailInstanceFunc = DetailInstance
	CreateInstanceFunc = CreateInstance
	UpdateInstanceFunc = UpdateInstance
	DeleteInstanceFunc = DeleteInstance
	StartInstanceFunc  = StartInstance
	CancelInstanceFunc = CancelInstance
)

// QueryInstances returns the caller's instances, newest first, optionally
// filtered to one workflow, each joined with its workflow summary and tasks.
func QueryInstances(query *InstanceQuery, sec *session.Session) (*[]InstanceRecord, error) {
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)

	var instances []WorkflowInstance
	if err := db.Where(&WorkflowInstance{UserID: sec.Identity.ID, WorkflowID: query.WorkflowID}).
		Order("create_time DESC").Find(&instances).Error; err != nil {
		return nil, err
	}

	workflowIds := make([]string, 0, len(instances))
	instanceIds := make([]string, 0, len(instances))
	for _, r := range instances {
		workflowIds = append(workflowIds, r.WorkflowID)
		instanceIds = append(instanceIds, r.ID)
	}

	summaries := map[string]flow.WorkflowSummary{}
	if len(workflowIds) > 0 {
		var workflows []flow.Workflow
		if err := db.Where("id IN (?)", workflowIds).Find(&workflows).Error; err != nil {
			return nil, err
		}
		for _, w := range workflows {
			summaries[w.ID] = w.Summary()
		}
	}

	tasksOfInstance, err := task.ListTasksOfInstances(db, instanceIds)
	if err != nil {
		return nil, err
	}

	records := make([]InstanceRecord, 0, len(instances))
	for _, r := range instances {
		tasks := tasksOfInstance[r.ID]
		if tasks == nil {
			tasks = []task.WorkflowTask{}
		}
		records = append(records, InstanceRecord{WorkflowInstance: r, Workflow: summaries[r.WorkflowID], Tasks: tasks})
	}
	return &records, nil
}

func DetailInstance(id string, sec *session.Session) (*InstanceDetail, error) {
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)

	record, err := fetchScopedInstance(db, id, sec)
	if err != nil {
		return nil, err
	}
	return joinInstanceDetail(db, record)
}

// CreateInstance persists a new PENDING instance against a workflow owned
// by the caller. The workflow must be ACTIVE; variables are stored verbatim.
func CreateInstance(creation *InstanceCreation, sec *session.Session) (*InstanceDetail, error) {
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)

	detail := InstanceDetail{}
	err := db.Transaction(func(tx *gorm.DB) error {
		workflow := flow.Workflow{}
		if err := tx.Where(&flow.Workflow{ID: creation.WorkflowID, UserID: sec.Identity.ID}).
			First(&workflow).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return bizerror.ErrWorkflowNotFound
			}
			return err
		}
		if workflow.Status != flow.WorkflowStatusActive {
			return bizerror.ErrWorkflowNotActive
		}

		now := time.Now().Round(time.Millisecond)
		record := WorkflowInstance{
			ID:         uuid.New().String(),
			Status:     InstanceStatusPending,
			Variables:  creation.Variables,
			WorkflowID: workflow.ID,
			UserID:     sec.Identity.ID,
			CreateTime: now,
			UpdateTime: now,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		detail = InstanceDetail{WorkflowInstance: record, Workflow: workflow, Tasks: []task.WorkflowTask{}}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// StartInstance moves a PENDING instance to RUNNING and stamps startedAt.
// The transition is a single conditional update keyed on the prior status,
// so concurrent starts cannot both win.
func StartInstance(id string, sec *session.Session) (*WorkflowInstance, error) {
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)

	record, err := fetchScopedInstance(db, id, sec)
	if err != nil {
		return nil, err
	}
	if record.Status != InstanceStatusPending {
		return nil, bizerror.ErrInstanceNotPending
	}

	now := time.Now().Round(time.Millisecond)
	result := db.Model(&WorkflowInstance{}).
		Where("id = ? AND user_id = ? AND status = ?", id, sec.Identity.ID, InstanceStatusPending).
		Updates(map[string]interface{}{"status": InstanceStatusRunning, "started_at": now, "update_time": now})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// lost the race against another transition
		return nil, bizerror.ErrInstanceNotPending
	}
	return fetchScopedInstance(db, id, sec)
}

// CancelInstance cancels any instance not yet COMPLETED or CANCELLED and
// stamps finishedAt. FAILED instances are cancellable.
func CancelInstance(id string, sec *session.Session) (*WorkflowInstance, error) {
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)

	record, err := fetchScopedInstance(db, id, sec)
	if err != nil {
		return nil, err
	}
	if record.Status == InstanceStatusCompleted || record.Status == InstanceStatusCancelled {
		return nil, bizerror.ErrInstanceFinished
	}

	now := time.Now().Round(time.Millisecond)
	result := db.Model(&WorkflowInstance{}).
		Where("id = ? AND user_id = ? AND status NOT IN (?)", id, sec.Identity.ID,
			[]InstanceStatus{InstanceStatusCompleted, InstanceStatusCancelled}).
		Updates(map[string]interface{}{"status": InstanceStatusCancelled, "finished_at": now, "update_time": now})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, bizerror.ErrInstanceFinished
	}
	return fetchScopedInstance(db, id, sec)
}

// UpdateInstance overwrites status/variables/finishedAt without consulting
// the state machine. Owners can force any status value through this path.
func UpdateInstance(id string, updating *InstanceUpdating, sec *session.Session) (*InstanceDetail, error) {
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)

	if _, err := fetchScopedInstance(db, id, sec); err != nil {
		return nil, err
	}

	changes := map[string]interface{}{"update_time": time.Now().Round(time.Millisecond)}
	if updating.Status != nil {
		changes["status"] = *updating.Status
	}
	if updating.Variables != nil {
		changes["variables"] = updating.Variables
	}
	if updating.FinishedAt != nil {
		changes["finished_at"] = *updating.FinishedAt
	}
	if err := db.Model(&WorkflowInstance{}).Where("id = ?", id).Updates(changes).Error; err != nil {
		return nil, err
	}

	record, err := fetchScopedInstance(db, id, sec)
	if err != nil {
		return nil, err
	}
	return joinInstanceDetail(db, record)
}

func DeleteInstance(id string, sec *session.Session) error {
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := fetchScopedInstance(tx, id, sec); err != nil {
			return err
		}
		return tx.Delete(&WorkflowInstance{}, "id = ?", id).Error
	})
}

// fetchScopedInstance loads the instance only when the caller owns it; a
// foreign-owned instance is indistinguishable from an absent one.
func fetchScopedInstance(db *gorm.DB, id string, sec *session.Session) (*WorkflowInstance, error) {
	record := WorkflowInstance{}
	if err := db.Where(&WorkflowInstance{ID: id, UserID: sec.Identity.ID}).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func joinInstanceDetail(db *gorm.DB, record *WorkflowInstance) (*InstanceDetail, error) {
	// the workflow is referenced, not owned: no owner scoping here
	workflow := flow.Workflow{}
	if err := db.Where(&flow.Workflow{ID: record.WorkflowID}).First(&workflow).Error; err != nil &&
		err != gorm.ErrRecordNotFound {
		return nil, err
	}
	tasks, err := task.ListTasksOfInstance(db, record.ID)
	if err != nil {
		return nil, err
	}
	return &InstanceDetail{WorkflowInstance: *record, Workflow: workflow, Tasks: tasks}, nil
}
