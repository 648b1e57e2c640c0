package model

// CommandKind names the intent of a Command. The values must stay in sync
// with the host's command dispatcher.
type CommandKind string

const (
	CommandTrain    CommandKind = "train"
	CommandBuild    CommandKind = "build"
	CommandMorph    CommandKind = "morph"
	CommandResearch CommandKind = "research"
	CommandMove     CommandKind = "move"
	CommandAttack   CommandKind = "attack"
	CommandAbility  CommandKind = "ability"
	CommandRally    CommandKind = "rally"
	CommandCamera   CommandKind = "camera"
)

// Command is a single order for the host to execute. ActorID is zero when the
// host chooses the actor (e.g. a build worker or a larva). Target and
// TargetID are mutually exclusive; both empty means an untargeted order.
type Command struct {
	Kind     CommandKind `json:"kind"`
	ActorID  int         `json:"actorId,omitempty"`
	Item     string      `json:"item,omitempty"`
	TargetID int         `json:"targetId,omitempty"`
	Target   *Point      `json:"target,omitempty"`
	Queue    bool        `json:"queue,omitempty"`
}
