package class

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

func (svc *Service) GetByID(ctx context.Context, id string) (Class, error) {
	rec, err := svc.mut.Fetch(ctx, record.KindClass, id)
	if err != nil {
		return Class{}, err
	}
	return FromRecord(rec), nil
}

// Update validates and applies a partial update to the class identified by id.
// On a validation failure nothing is mutated.
func (svc *Service) Update(ctx context.Context, id string, uc UpdateClass) (Class, error) {
	if err := uc.Validate(svc.validate, svc.translator); err != nil {
		svc.log.Warn(fmt.Sprintf("class update rejected: %s", id), err)
		return Class{}, err
	}

	rec, err := svc.mut.Update(ctx, record.KindClass, id, uc.Patch())
	if err != nil {
		return Class{}, err
	}
	return FromRecord(rec), nil
}
