package app

import (
	"errors"

	"Ironmarch/internal/battle/entity"
	"Ironmarch/internal/battle/errs"
)

func kindFor(err error) errs.Kind {
	switch {
	case errors.Is(err, entity.ErrArmyNotFound),
		errors.Is(err, entity.ErrRegionNotFound):
		return errs.KindBusiness
	default:
		return errs.KindInfra
	}
}
