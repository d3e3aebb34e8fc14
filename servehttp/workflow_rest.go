package servehttp

import (
	"net/http"

	"flowdesk/bizerror"
	"flowdesk/domain/flow"
	"flowdesk/infra/ratelimit"
	"flowdesk/misc"
	"flowdesk/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

func RegisterWorkflowHandler(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group("/api/workflows", middleWares...)

	handler := &workflowHandler{}

	creationLimit := ratelimit.NewCreationRateLimit()
	g.GET("", handler.handleQueryWorkflows)
	g.GET(":id", handler.handleDetailWorkflow)
	g.POST("", creationLimit, handler.handleCreateWorkflow)
	g.PUT(":id", handler.handleUpdateWorkflow)
	g.DELETE(":id", handler.handleDeleteWorkflow)
}

type workflowHandler struct {
}

func parseIdParam(c *gin.Context) string {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	return id
}

func (h *workflowHandler) handleQueryWorkflows(c *gin.Context) {
	workflows, err := flow.QueryWorkflowsFunc(session.ExtractSessionFromGinContext(c))
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, misc.Ok(workflows))
}

func (h *workflowHandler) handleDetailWorkflow(c *gin.Context) {
	id := parseIdParam(c)

	workflow, err := flow.DetailWorkflowFunc(id, session.ExtractSessionFromGinContext(c))
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, misc.Ok(workflow))
}

func (h *workflowHandler) handleCreateWorkflow(c *gin.Context) {
	creation := flow.WorkflowCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	workflow, err := flow.CreateWorkflowFunc(&creation, session.ExtractSessionFromGinContext(c))
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.JSON(http.StatusCreated, misc.OkWithMessage("Workflow created successfully", workflow))
}

func (h *workflowHandler) handleUpdateWorkflow(c *gin.Context) {
	id := parseIdParam(c)

	updating := flow.WorkflowUpdating{}
	if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	workflow, err := flow.UpdateWorkflowFunc(id, &updating, session.ExtractSessionFromGinContext(c))
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, misc.OkWithMessage("Workflow updated successfully", workflow))
}

func (h *workflowHandler) handleDeleteWorkflow(c *gin.Context) {
	id := parseIdParam(c)

	if err := flow.DeleteWorkflowFunc(id, session.ExtractSessionFromGinContext(c)); err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, &misc.Response{Success: true, Message: "Workflow deleted successfully"})
}
