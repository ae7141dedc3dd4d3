package serverconfig

import (
	"Ironmarch/internal/shared/config"
)

const defaultConfigRelPath = "configs/conf.yml"

var Conf Config

func Load() {
	config.Load(defaultConfigRelPath, &Conf)
	if Conf.Logic.BaseMarchMinutes <= 0 {
		Conf.Logic.BaseMarchMinutes = 90
	}
	if Conf.Logic.TickCap <= 0 {
		Conf.Logic.TickCap = 168
	}
}
