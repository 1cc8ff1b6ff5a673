package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classforge/classforge/core"
	"github.com/classforge/classforge/core/assignment"
	"github.com/classforge/classforge/core/submission"
)

type submissionApi struct {
	svc    *submission.Service
	asgSvc *assignment.Service
}

func registerSubmissionAPI(g *echo.Group, svc *submission.Service, asgSvc *assignment.Service) {
	api := submissionApi{svc: svc, asgSvc: asgSvc}

	bg := g.Group("/assignments/:id/batches")
	bg.GET("", api.list)
	bg.POST("", api.create)
}

// NewBatchRequest is the upload payload: batch metadata plus the declared MIME
// types of the files in the batch.
type NewBatchRequest struct {
	Name      string   `json:"batchName"`
	FileCount int      `json:"fileCount"`
	MimeTypes []string `json:"mimeTypes"`
}

// Handlers

func (api *submissionApi) create(ctx echo.Context) error {
	var data NewBatchRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewBatchRequest")
	}

	assignmentID := ctx.Param("id")
	asg, err := api.asgSvc.GetByID(ctx.Request().Context(), assignmentID)
	if err != nil {
		return err
	}

	// accepted MIME classes depend on the parent assignment's type
	for _, mimeType := range data.MimeTypes {
		if !asg.Accepts(mimeType) {
			return core.NewValidationError(nil, core.FieldError{
				Field: "mimeTypes",
				Error: fmt.Sprintf("%q is not accepted for a %s assignment", mimeType, asg.Type),
			})
		}
	}

	batch, err := api.svc.CreateBatch(ctx.Request().Context(), submission.NewBatch{
		AssignmentID: assignmentID,
		Name:         data.Name,
		FileCount:    data.FileCount,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, batch)
}

func (api *submissionApi) list(ctx echo.Context) error {
	batches, err := api.svc.Refresh(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, batches)
}
