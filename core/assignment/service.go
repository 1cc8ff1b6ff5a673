package assignment

import (
	"context"
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/classforge/classforge/core"
	"github.com/classforge/classforge/core/record"
)

type Service struct {
	mut        *record.Mutator
	log        core.Logger
	validate   *validator.Validate
	translator ut.Translator
}

func NewService(store record.Store, logger core.Logger, validate *validator.Validate, translator ut.Translator) *Service {
	return &Service{
		mut:        record.NewMutator(store, logger),
		log:        logger,
		validate:   validate,
		translator: translator,
	}
}

func (svc *Service) GetByID(ctx context.Context, id string) (Assignment, error) {
	rec, err := svc.mut.Fetch(ctx, record.KindAssignment, id)
	if err != nil {
		return Assignment{}, err
	}
	return FromRecord(rec), nil
}

// Update validates and applies a partial update to the assignment identified
// by id. Grading criteria cannot be reached through this path.
func (svc *Service) Update(ctx context.Context, id string, ua UpdateAssignment) (Assignment, error) {
	if err := ua.Validate(svc.validate, svc.translator); err != nil {
		svc.log.Warn(fmt.Sprintf("assignment update rejected: %s", id), err)
		return Assignment{}, err
	}

	rec, err := svc.mut.Update(ctx, record.KindAssignment, id, ua.Patch())
	if err != nil {
		return Assignment{}, err
	}
	return FromRecord(rec), nil
}

// UpdateCriteria is the only mutation path for an assignment's grading criteria.
func (svc *Service) UpdateCriteria(ctx context.Context, id string, ucr UpdateCriteria) (Assignment, error) {
	if err := ucr.Validate(svc.validate, svc.translator); err != nil {
		svc.log.Warn(fmt.Sprintf("criteria update rejected: %s", id), err)
		return Assignment{}, err
	}

	rec, err := svc.mut.Update(ctx, record.KindAssignment, id, ucr.Patch())
	if err != nil {
		return Assignment{}, err
	}
	return FromRecord(rec), nil
}
