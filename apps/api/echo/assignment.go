package echoapi

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classforge/classforge/core"
	"github.com/classforge/classforge/core/assignment"
	"github.com/classforge/classforge/core/submission"
)

type assignmentApi struct {
	svc *assignment.Service
	sub *submission.Service
	log core.Logger

	mu    sync.Mutex
	views map[string]*assignment.View
}

func registerAssignmentAPI(g *echo.Group, svc *assignment.Service, sub *submission.Service, logger core.Logger) {
	api := assignmentApi{
		svc:   svc,
		sub:   sub,
		log:   logger,
		views: make(map[string]*assignment.View),
	}

	dg := g.Group("/assignments/:id")
	dg.GET("", api.retrieve)
	dg.PATCH("", api.update)
	dg.PUT("/criteria", api.updateCriteria)
}

// view returns the aggregate view for an assignment, shared across requests so
// superseded refreshes are discarded last-commit-wins.
func (api *assignmentApi) view(id string) *assignment.View {
	api.mu.Lock()
	defer api.mu.Unlock()

	v, ok := api.views[id]
	if !ok {
		v = assignment.NewView(id, api.svc, api.sub, api.log)
		api.views[id] = v
	}
	return v
}

// Handlers

func (api *assignmentApi) retrieve(ctx echo.Context) error {
	snap, err := api.view(ctx.Param("id")).Refresh(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, snap)
}

func (api *assignmentApi) update(ctx echo.Context) error {
	var data assignment.UpdateAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAssignment")
	}

	asg, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, asg)
}

func (api *assignmentApi) updateCriteria(ctx echo.Context) error {
	var data assignment.UpdateCriteria
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCriteria")
	}

	asg, err := api.svc.UpdateCriteria(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, asg)
}
