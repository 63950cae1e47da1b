package snake

// Level describes one arena. Layout rows use '#' for walls and any other
// character for open floor.
type Level struct {
	ID             int
	Name           string
	TargetFood     int // Food needed to clear the level in campaign mode
	MoveEveryTicks int // Simulation ticks between snake moves
	Layout         []string
}

// Levels is the campaign, in play order.
var Levels = []Level{
	{
		ID:             1,
		Name:           "Open Field",
		TargetFood:     5,
		MoveEveryTicks: 6,
		Layout: []string{
			"########################################",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"########################################",
		},
	},
	{
		ID:             2,
		Name:           "Pillars",
		TargetFood:     6,
		MoveEveryTicks: 6,
		Layout: []string{
			"########################################",
			"#                                      #",
			"#                                      #",
			"#      ##          ##          ##      #",
			"#      ##          ##          ##      #",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"#      ##          ##          ##      #",
			"#      ##          ##          ##      #",
			"#                                      #",
			"#                                      #",
			"########################################",
		},
	},
	{
		ID:             3,
		Name:           "Corridors",
		TargetFood:     7,
		MoveEveryTicks: 5,
		Layout: []string{
			"########################################",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"#       ########################       #",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"#       ########################       #",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"########################################",
		},
	},
	{
		ID:             4,
		Name:           "Crossroads",
		TargetFood:     8,
		MoveEveryTicks: 5,
		Layout: []string{
			"########################################",
			"#                                      #",
			"#                   #                  #",
			"#                   #                  #",
			"#                   #                  #",
			"#                   #                  #",
			"#                   #                  #",
			"#                                      #",
			"# ####                            #### #",
			"#                                      #",
			"#                   #                  #",
			"#                   #                  #",
			"#                   #                  #",
			"#                   #                  #",
			"#                   #                  #",
			"########################################",
		},
	},
	{
		ID:             5,
		Name:           "Three Halls",
		TargetFood:     9,
		MoveEveryTicks: 4,
		Layout: []string{
			"########################################",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"#########  ########  ########  #########",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"#########  ########  ########  #########",
			"#                                      #",
			"#                                      #",
			"#                                      #",
			"########################################",
		},
	},
	{
		ID:             6,
		Name:           "Spiral Gate",
		TargetFood:     10,
		MoveEveryTicks: 4,
		Layout: []string{
			"########################################",
			"#                                      #",
			"#                                      #",
			"#             ############             #",
			"#    #        #                   #    #",
			"#    #        #                   #    #",
			"#    #        #                   #    #",
			"#    #                            #    #",
			"#    #                            #    #",
			"#    #                   #        #    #",
			"#    #                   #        #    #",
			"#    #                   #        #    #",
			"#             ############             #",
			"#                                      #",
			"#                                      #",
			"########################################",
		},
	},
}

// LevelCount returns the number of levels.
func LevelCount() int {
	return len(Levels)
}

// GetLevel returns the level at index i, or nil if out of range.
func GetLevel(i int) *Level {
	if i < 0 || i >= len(Levels) {
		return nil
	}
	return &Levels[i]
}

// LevelNames returns the names of all levels.
func LevelNames() []string {
	names := make([]string, len(Levels))
	for i, level := range Levels {
		names[i] = level.Name
	}
	return names
}
