package agent

import (
	"fmt"
	"hash/fnv"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nstehr/brood/config"
	"github.com/nstehr/brood/ipc"
	"github.com/nstehr/brood/model"
	"github.com/nstehr/brood/rules"
	"github.com/nstehr/brood/telemetry"
)

// sampleEvery is how often, in iterations, the overview sampler runs when
// the profile turns visualization on.
const sampleEvery = 8

// Options are the per-process settings every agent shares.
type Options struct {
	ProfilePath string
	Seed        uint64
	JournalDir  string
	Store       *telemetry.Store
}

// Agent owns the decision making for a single host connection. A
// connection plays one match at a time; a new hello starts a new match.
type Agent struct {
	Conn    *ipc.Connection
	Player  string
	Race    string
	MatchID string

	opts     Options
	profile  rules.Profile
	strategy rules.Strategy
	state    *rules.StrategyState
	rng      rules.Rand
	sampler  *telemetry.Sampler
	journal  *telemetry.Journal
	prev     *stateSnapshot
}

func New(conn *ipc.Connection, opts Options) *Agent {
	return &Agent{Conn: conn, opts: opts}
}

// Register wires the agent's handlers into its connection.
func (a *Agent) Register() {
	a.Conn.RegisterHandler(ipc.TypeHello, a.HandleHello)
	a.Conn.RegisterHandler(ipc.TypeSnapshot, a.HandleSnapshot)
	a.Conn.RegisterHandler(ipc.TypeGameEnd, a.HandleGameEnd)
}

// HandleHello starts a match: it resolves the profile, builds the faction
// strategy and fresh match state, and acks with the new match id.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := env.Decode(&hello); err != nil {
		return nil, err
	}
	if a.strategy != nil {
		slog.Warn("hello during a match, starting over", "player", a.Player, "match", a.MatchID)
		a.closeMatch()
	}

	profile, err := config.ResolveProfile(a.opts.ProfilePath, hello.Race)
	if err != nil {
		return nil, fmt.Errorf("resolve profile: %w", err)
	}
	strategy, err := rules.NewStrategy(profile)
	if err != nil {
		return nil, fmt.Errorf("build strategy: %w", err)
	}

	a.Player, a.Race = hello.Player, hello.Race
	a.Conn.Player = hello.Player
	a.MatchID = uuid.NewString()
	a.profile = profile
	a.strategy = strategy
	a.state = rules.NewStrategyState(profile)
	a.rng = rules.NewRand(a.seed())
	a.sampler = telemetry.NewSampler()
	a.prev = nil

	if a.opts.JournalDir != "" {
		j, err := telemetry.OpenJournal(a.opts.JournalDir, a.MatchID)
		if err != nil {
			slog.Error("journal disabled", "match", a.MatchID, "error", err)
		} else {
			a.journal = j
		}
	}
	if a.opts.Store != nil {
		err := a.opts.Store.StartMatch(telemetry.Match{
			ID:        a.MatchID,
			Player:    hello.Player,
			Race:      hello.Race,
			Map:       hello.Map,
			Opponent:  hello.Opponent,
			Profile:   profile.Name,
			StartedAt: time.Now(),
		})
		if err != nil {
			slog.Error("failed to record match", "match", a.MatchID, "error", err)
		}
	}

	slog.Info("match started",
		"player", a.Player,
		"race", a.Race,
		"map", hello.Map,
		"profile", profile.Name,
		"strategy", strategy.Name(),
		"match", a.MatchID,
	)

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok", MatchID: a.MatchID})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// seed is the configured seed, or one derived from the match id.
func (a *Agent) seed() uint64 {
	if a.opts.Seed != 0 {
		return a.opts.Seed
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(a.MatchID))
	return h.Sum64()
}

// HandleSnapshot runs one decision tick and replies with the command batch.
// The batch is sent even when empty so the host can pace itself on replies.
func (a *Agent) HandleSnapshot(env ipc.Envelope) (*ipc.Envelope, error) {
	if a.strategy == nil {
		return nil, fmt.Errorf("snapshot before hello")
	}
	var snap model.WorldSnapshot
	if err := env.Decode(&snap); err != nil {
		return nil, err
	}

	d := rules.Step(a.strategy, snap, a.state, a.profile, a.rng)

	view := rules.NewRuleEnv(snap, a.state, a.profile, a.rng, nil)
	cur := takeSnapshot(view)
	events := phaseEvents(snap.Iteration, d.Transitions)
	events = append(events, detectEvents(snap, cur, a.prev)...)
	a.prev = &cur
	for _, e := range events {
		slog.Info("event", "kind", e.Kind, "detail", e.Detail, "tick", snap.Iteration, "player", a.Player)
	}

	if a.profile.Visualize && snap.Iteration%sampleEvery == 0 {
		a.sample(snap, view)
	}
	if a.journal != nil && (len(d.Commands) > 0 || len(events) > 0) {
		a.writeJournal(snap, d, events)
	}

	slog.Debug("tick",
		"tick", snap.Iteration,
		"time", snap.Time,
		"minerals", snap.Minerals,
		"supply", fmt.Sprintf("%d/%d", snap.SupplyUsed, snap.SupplyCap),
		"commands", len(d.Commands),
	)

	resp, err := ipc.NewEnvelope(ipc.TypeCommands, ipc.CommandBatch{Iteration: snap.Iteration, Commands: d.Commands})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *Agent) sample(snap model.WorldSnapshot, view rules.RuleEnv) {
	s := telemetry.Sample{
		Time:        snap.Time,
		MineralRate: snap.CollectionRateMinerals,
		GasRate:     snap.CollectionRateVespene,
		SupplyUsed:  snap.SupplyUsed,
		Workers:     len(view.Workers()),
		Forces:      len(view.Forces()),
		ArmyLost:    snap.Score.ArmyLost,
		ArmyKilled:  snap.Score.ArmyKilled,
	}
	a.sampler.Add(s)
	if a.opts.Store != nil {
		if err := a.opts.Store.RecordSample(a.MatchID, s); err != nil {
			slog.Warn("failed to store sample", "match", a.MatchID, "error", err)
		}
	}
}

func (a *Agent) writeJournal(snap model.WorldSnapshot, d rules.Decision, events []Event) {
	var phases []string
	for _, name := range a.state.Phases.Phases() {
		if a.state.Phases.Active(name) {
			phases = append(phases, name)
		}
	}
	entry := telemetry.Entry{Iteration: snap.Iteration, Time: snap.Time, Phases: phases, Commands: d.Commands}
	for _, e := range events {
		entry.Events = append(entry.Events, e.String())
	}
	if err := a.journal.Write(entry); err != nil {
		slog.Warn("journal write failed", "match", a.MatchID, "error", err)
	}
}

// Samples exposes the rolling economy overview of the current match.
func (a *Agent) Samples() []telemetry.Sample {
	if a.sampler == nil {
		return nil
	}
	return a.sampler.Samples()
}

// HandleGameEnd records the result and releases the match's resources.
func (a *Agent) HandleGameEnd(env ipc.Envelope) (*ipc.Envelope, error) {
	var end ipc.GameEndMessage
	if err := env.Decode(&end); err != nil {
		return nil, err
	}
	if a.strategy == nil {
		return nil, fmt.Errorf("game end before hello")
	}

	if a.opts.Store != nil {
		if err := a.opts.Store.FinishMatch(a.MatchID, end.Result, time.Now()); err != nil {
			slog.Error("failed to record result", "match", a.MatchID, "error", err)
		}
	}
	slog.Info("match ended",
		"player", a.Player,
		"match", a.MatchID,
		"result", end.Result,
		"expansions", a.state.ExpansionCount,
	)
	matchID := a.MatchID
	a.closeMatch()

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok", MatchID: matchID})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// Close releases whatever the current match still holds. Safe to call
// more than once.
func (a *Agent) Close() { a.closeMatch() }

func (a *Agent) closeMatch() {
	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			slog.Warn("journal close failed", "match", a.MatchID, "error", err)
		}
		a.journal = nil
	}
	a.strategy = nil
	a.state = nil
	a.prev = nil
}
