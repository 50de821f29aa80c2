package game

import "hash/fnv"

// BoardSeed derives the shuffle seed of a session's board from its ID, so
// reloading the board shows the same arrangement.
func BoardSeed(sessionID string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(sessionID))
	return h.Sum64()
}
