package agent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nstehr/brood/ipc"
	"github.com/nstehr/brood/model"
	"github.com/nstehr/brood/rules"
	"github.com/nstehr/brood/telemetry"
)

func envelope(t *testing.T, msgType string, data any) ipc.Envelope {
	t.Helper()
	env, err := ipc.NewEnvelope(msgType, data)
	if err != nil {
		t.Fatal(err)
	}
	return env
}

func opening() model.WorldSnapshot {
	snap := model.WorldSnapshot{
		Minerals:            100,
		SupplyUsed:          12,
		SupplyCap:           14,
		StartLocation:       model.Point{X: 30, Y: 30},
		EnemyStartLocations: []model.Point{{X: 150, Y: 150}},
		MapCenter:           model.Point{X: 90, Y: 90},
		Expansions:          []model.Expansion{{Position: model.Point{X: 30, Y: 30}, MineralFields: 8}},
		Units: []model.UnitView{
			unitAt(1, rules.Hatchery, 30, 30),
			unitAt(2, rules.Overlord, 32, 32),
		},
	}
	for i := range 12 {
		snap.Units = append(snap.Units, unitAt(10+i, rules.Drone, 25, 25))
	}
	for i := range 3 {
		snap.Units = append(snap.Units, unitAt(30+i, rules.Larva, 31, 30))
	}
	return snap
}

func startMatch(t *testing.T, a *Agent) ipc.AckMessage {
	t.Helper()
	resp, err := a.HandleHello(envelope(t, ipc.TypeHello, ipc.HelloMessage{Player: "brood", Race: "zerg", Map: "Acropolis"}))
	if err != nil {
		t.Fatalf("HandleHello failed: %v", err)
	}
	var ack ipc.AckMessage
	if err := resp.Decode(&ack); err != nil {
		t.Fatal(err)
	}
	return ack
}

func TestHandleHello(t *testing.T) {
	a := New(ipc.NewConnection(nil, nil), Options{Seed: 7})
	ack := startMatch(t, a)

	if ack.Status != "ok" || ack.MatchID == "" {
		t.Fatalf("unexpected ack %+v", ack)
	}
	if ack.MatchID != a.MatchID {
		t.Errorf("ack match %q, agent match %q", ack.MatchID, a.MatchID)
	}
	if a.Conn.Player != "brood" {
		t.Errorf("connection player = %q", a.Conn.Player)
	}
	if a.strategy.Name() != rules.FactionZerg {
		t.Errorf("strategy = %q, want zerg", a.strategy.Name())
	}
}

func TestHandleHello_TerranRace(t *testing.T) {
	a := New(ipc.NewConnection(nil, nil), Options{})
	if _, err := a.HandleHello(envelope(t, ipc.TypeHello, ipc.HelloMessage{Player: "p", Race: "terran"})); err != nil {
		t.Fatal(err)
	}
	if a.strategy.Name() != rules.FactionTerran {
		t.Errorf("strategy = %q, want terran", a.strategy.Name())
	}
}

func TestHandleHello_RaceCase(t *testing.T) {
	for race, want := range map[string]string{"Terran": rules.FactionTerran, "PROTOSS": rules.FactionProtoss} {
		a := New(ipc.NewConnection(nil, nil), Options{})
		if _, err := a.HandleHello(envelope(t, ipc.TypeHello, ipc.HelloMessage{Player: "p", Race: race})); err != nil {
			t.Fatal(err)
		}
		if a.strategy.Name() != want {
			t.Errorf("race %q: strategy = %q, want %q", race, a.strategy.Name(), want)
		}
	}
}

func TestHandleHello_BadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("faction: orc\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	a := New(ipc.NewConnection(nil, nil), Options{ProfilePath: path})
	if _, err := a.HandleHello(envelope(t, ipc.TypeHello, ipc.HelloMessage{Player: "p", Race: "zerg"})); err == nil {
		t.Fatal("expected an error for an invalid profile")
	}
}

func TestHandleSnapshot_BeforeHello(t *testing.T) {
	a := New(ipc.NewConnection(nil, nil), Options{})
	if _, err := a.HandleSnapshot(envelope(t, ipc.TypeSnapshot, opening())); err == nil {
		t.Fatal("expected an error for a snapshot before hello")
	}
}

func TestHandleSnapshot(t *testing.T) {
	a := New(ipc.NewConnection(nil, nil), Options{Seed: 7})
	startMatch(t, a)

	resp, err := a.HandleSnapshot(envelope(t, ipc.TypeSnapshot, opening()))
	if err != nil {
		t.Fatalf("HandleSnapshot failed: %v", err)
	}
	if resp.Type != ipc.TypeCommands {
		t.Fatalf("reply type = %q", resp.Type)
	}
	var batch ipc.CommandBatch
	if err := resp.Decode(&batch); err != nil {
		t.Fatal(err)
	}

	overlords := 0
	for _, c := range batch.Commands {
		if c.Kind == model.CommandTrain && c.Item == rules.Overlord {
			overlords++
		}
	}
	if overlords != 1 {
		t.Errorf("expected one overlord, got %d in %+v", overlords, batch.Commands)
	}
	if !a.state.Phase(rules.PhaseBooming) {
		t.Error("booming not active after the first tick")
	}
}

func TestMatchLifecycle(t *testing.T) {
	dir := t.TempDir()
	profile := filepath.Join(dir, "profile.yaml")
	if err := os.WriteFile(profile, []byte("faction: zerg\nvisualize: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	store, err := telemetry.OpenStore(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	journalDir := filepath.Join(dir, "journal")
	a := New(ipc.NewConnection(nil, nil), Options{
		ProfilePath: profile,
		Seed:        7,
		JournalDir:  journalDir,
		Store:       store,
	})
	ack := startMatch(t, a)

	if _, err := a.HandleSnapshot(envelope(t, ipc.TypeSnapshot, opening())); err != nil {
		t.Fatal(err)
	}
	if got := len(a.Samples()); got != 1 {
		t.Errorf("expected 1 overview sample, got %d", got)
	}

	resp, err := a.HandleGameEnd(envelope(t, ipc.TypeGameEnd, ipc.GameEndMessage{Result: "victory"}))
	if err != nil {
		t.Fatalf("HandleGameEnd failed: %v", err)
	}
	if resp.Type != ipc.TypeAck {
		t.Errorf("reply type = %q", resp.Type)
	}

	m, err := store.Match(ack.MatchID)
	if err != nil {
		t.Fatal(err)
	}
	if m.Result != "victory" || m.Race != "zerg" || m.Map != "Acropolis" {
		t.Errorf("unexpected match record %+v", m)
	}
	samples, err := store.Samples(ack.MatchID)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 1 || samples[0].Workers != 12 {
		t.Errorf("unexpected stored samples %+v", samples)
	}

	entries, err := telemetry.ReadJournal(filepath.Join(journalDir, ack.MatchID+".jsonl.zst"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || len(entries[0].Commands) == 0 {
		t.Fatalf("unexpected journal %+v", entries)
	}
	if len(entries[0].Events) != 1 || entries[0].Events[0] != "phase_started: booming at 0s" {
		t.Errorf("unexpected journal events %v", entries[0].Events)
	}

	// The match is over; further snapshots are rejected.
	if _, err := a.HandleSnapshot(envelope(t, ipc.TypeSnapshot, opening())); err == nil {
		t.Error("expected an error for a snapshot after game end")
	}
}
