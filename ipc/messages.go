package ipc

import "github.com/nstehr/brood/model"

// Message types. Hosts must use the same strings.
const (
	TypeHello    = "hello"
	TypeAck      = "ack"
	TypeSnapshot = "snapshot"
	TypeCommands = "commands"
	TypeGameEnd  = "game_end"
)

// HelloMessage opens a match. Race selects the strategy profile when the
// configured one does not pin a faction.
type HelloMessage struct {
	Player   string `json:"player"`
	Race     string `json:"race"`
	Map      string `json:"map"`
	Opponent string `json:"opponent,omitempty"`
}

type AckMessage struct {
	Status  string `json:"status"`
	MatchID string `json:"matchId,omitempty"`
}

// CommandBatch is the reply to one snapshot.
type CommandBatch struct {
	Iteration int             `json:"iteration"`
	Commands  []model.Command `json:"commands"`
}

// GameEndMessage closes a match. Result is "victory", "defeat", "tie" or
// whatever the host reports.
type GameEndMessage struct {
	Result string `json:"result"`
}
