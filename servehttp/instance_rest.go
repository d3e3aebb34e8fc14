package servehttp

import (
	"net/http"

	"flowdesk/bizerror"
	"flowdesk/domain/instance"
	"flowdesk/infra/ratelimit"
	"flowdesk/misc"
	"flowdesk/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func RegisterInstanceHandler(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group("/api/instances", middleWares...)

	handler := &instanceHandler{}

	creationLimit := ratelimit.NewCreationRateLimit()
	g.GET("", handler.handleQueryInstances)
	g.GET(":id", handler.handleDetailInstance)
	g.POST("", creationLimit, handler.handleCreateInstance)
	g.PUT(":id", handler.handleUpdateInstance)
	g.POST(":id/start", handler.handleStartInstance)
	g.POST(":id/cancel", handler.handleCancelInstance)
	g.DELETE(":id", handler.handleDeleteInstance)
}

type instanceHandler struct {
}

func (h *instanceHandler) handleQueryInstances(c *gin.Context) {
	query := instance.InstanceQuery{}
	if err := c.ShouldBindWith(&query, binding.Query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	records, err := instance.QueryInstancesFunc(&query, session.ExtractSessionFromGinContext(c))
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, misc.Ok(records))
}

func (h *instanceHandler) handleDetailInstance(c *gin.Context) {
	id := parseIdParam(c)

	detail, err := instance.DetailInstanceFunc(id, session.ExtractSessionFromGinContext(c))
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, misc.Ok(detail))
}

func (h *instanceHandler) handleCreateInstance(c *gin.Context) {
	creation := instance.InstanceCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	detail, err := instance.CreateInstanceFunc(&creation, session.ExtractSessionFromGinContext(c))
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.JSON(http.StatusCreated, misc.OkWithMessage("Workflow instance created successfully", detail))
}

func (h *instanceHandler) handleUpdateInstance(c *gin.Context) {
	id := parseIdParam(c)

	updating := instance.InstanceUpdating{}
	if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	detail, err := instance.UpdateInstanceFunc(id, &updating, session.ExtractSessionFromGinContext(c))
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, misc.OkWithMessage("Workflow instance updated successfully", detail))
}

func (h *instanceHandler) handleStartInstance(c *gin.Context) {
	id := parseIdParam(c)

	record, err := instance.StartInstanceFunc(id, session.ExtractSessionFromGinContext(c))
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, misc.OkWithMessage("Workflow instance started successfully", record))
}

func (h *instanceHandler) handleCancelInstance(c *gin.Context) {
	id := parseIdParam(c)

	record, err := instance.CancelInstanceFunc(id, session.ExtractSessionFromGinContext(c))
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, misc.OkWithMessage("Workflow instance cancelled successfully", record))
}

func (h *instanceHandler) handleDeleteInstance(c *gin.Context) {
	id := parseIdParam(c)

	if err := instance.DeleteInstanceFunc(id, session.ExtractSessionFromGinContext(c)); err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, &misc.Response{Success: true, Message: "Workflow instance deleted successfully"})
}
