package main

import "strings"

// game is a named sequence of UCI moves from a real recorded game, used
// to put the search kernel through realistic midgame positions rather
// than just the opening.
type game struct {
	description string
	moves       []string
}

// games are drawn from well-known historical games, the same source
// material the teacher's own benchmark harness uses.
var games = []game{
	{
		description: "Garry Kasparov vs Veselin Topalov, Wijk aan Zee 1999",
		moves: strings.Fields("e2e4 d7d6 d2d4 g8f6 b1c3 g7g6 c1e3 f8g7 " +
			"d1d2 c7c6 f2f3 b7b5 g1e2 b8d7 e3h6 g7h6 d2h6 c8b7"),
	},
	{
		description: "Vladimir Kramnik vs Alexey Shirov, Linares 1994",
		moves: strings.Fields("g1f3 d7d5 d2d4 c8f5 c2c4 e7e6 b1c3 c7c6 " +
			"d1b3 d8b6 c4c5 b6c7 c1f4 c7c8 e2e3 g8f6 b3a4 b8d7"),
	},
	{
		description: "Mikhail Tal vs Boris Spassky, Leningrad 1954",
		moves: strings.Fields("c2c4 g8f6 b1c3 e7e6 d2d4 c7c5 d4d5 e6d5 " +
			"c4d5 g7g6 g1f3 f8g7 c1f4 d7d6 h2h3 e8g8"),
	},
}
