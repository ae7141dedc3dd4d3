package military

import "testing"

func TestLoadTables(t *testing.T) {
	Load()

	infantry, ok := EquipmentConf.Stats(1)
	if !ok {
		t.Fatal("infantry equipment missing from table")
	}
	if infantry.Attack != 6 || infantry.Defense != 22 || infantry.Breakthrough != 3 {
		t.Errorf("infantry stats = %+v, want 6/22/3", infantry)
	}
	if got := EquipmentConf.OrganizationPerUnit(1); got != 10 {
		t.Errorf("organization per unit = %v, want 10", got)
	}
	if got := EquipmentConf.OrganizationPerUnit(99); got != 0 {
		t.Errorf("unknown type organization = %v, want 0", got)
	}

	for _, terrain := range []string{"ocean", "plain", "forest", "hills", "mountain"} {
		if _, ok := TerrainConf.Modifier(terrain); !ok {
			t.Errorf("terrain %q missing from table", terrain)
		}
	}

	ocean, _ := TerrainConf.Modifier("ocean")
	if ocean.MarchSpeed != -1.0 || ocean.Breakthrough != -1.0 {
		t.Errorf("ocean modifiers = %+v, want march_speed and breakthrough -1.0", ocean)
	}
	if _, ok := TerrainConf.Modifier("swamp"); ok {
		t.Error("unknown terrain should not resolve")
	}
}
