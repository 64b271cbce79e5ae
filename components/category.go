package components

import (
	"github.com/automoto/skirmish/shared/netconfig"
	"github.com/yohamta/donburi"
)

// CategoryData marks which commands an entity receives.
type CategoryData struct {
	Mask netconfig.Category
}

var Category = donburi.NewComponentType[CategoryData]()
