package splitter

import (
	"fmt"
	"sort"
	"strconv"
)

// itemIDs maps split-file item names to the inventory ids the game stores.
var itemIDs = map[string]uint16{
	"keno_ticket":          309,
	"vip_susie_card":       303,
	"vip_nancy_card":       304,
	"vip_cheryl_card":      302,
	"show_stage_key":       310,
	"vip_leagan_card":      305,
	"attraction_key":       335,
	"museum_key":           336,
	"control_room_key":     337,
	"evil_house_key":       340,
	"spear_key":            308,
	"card_disk_c":          338,
	"card_disk_d":          339,
	"vip_sydney_card":      306,
	"playing_card_9":       311,
	"blue_clock_hand":      331,
	"red_clock_hand":       332,
	"panel_1":              359,
	"event_room_key":       363,
	"panel_2":              364,
	"panel_4":              366,
	"panel_6":              368,
	"y_panel_key":          343,
	"passageway_d4_key":    383,
	"parking_lot_key":      385,
	"campground_key":       392,
	"storage_room_key":     393,
	"forklift_key":         434,
	"log_house_key":        408,
	"guesthouse_key":       435,
	"shower_room_key":      413,
	"chainsaw_shelf_key":   403,
	"bourbon":              415,
	"gate_key":             405,
	"chainsaw":             404,
	"observation_room_key": 428,
	"sterilization_key":    429,
	"m82a1":                111,
	"sin_key":              423,
	"fuse":                 430,
}

// ResolveItem maps a split-file item reference to an inventory id. It
// accepts a known item name or a bare decimal id.
func ResolveItem(ref string) (uint16, error) {
	if id, ok := itemIDs[ref]; ok {
		return id, nil
	}
	if n, err := strconv.ParseUint(ref, 10, 16); err == nil {
		return uint16(n), nil
	}
	return 0, fmt.Errorf("unknown item %q", ref)
}

// ItemNames returns the known item names, sorted, for diagnostics.
func ItemNames() []string {
	names := make([]string, 0, len(itemIDs))
	for name := range itemIDs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
