package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"mine_evacuation/internal/hardware"
	"mine_evacuation/internal/models"
	"mine_evacuation/internal/notify"
	"mine_evacuation/internal/repository"
	"mine_evacuation/internal/telemetry"
)

type shownText struct {
	text  string
	color models.RGB
}

// recordingDisplay remembers every LCD write.
type recordingDisplay struct {
	mu        sync.Mutex
	shown     []shownText
	backlight models.RGB
}

func (d *recordingDisplay) SetText(_ context.Context, text string, color models.RGB) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shown = append(d.shown, shownText{text: text, color: color})
	d.backlight = color
	return nil
}

func (d *recordingDisplay) SetBacklight(_ context.Context, color models.RGB) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.backlight = color
	return nil
}

func (d *recordingDisplay) texts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.shown))
	for _, s := range d.shown {
		out = append(out, s.text)
	}
	return out
}

func (d *recordingDisplay) lastShown() shownText {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shown[len(d.shown)-1]
}

type journalLine struct {
	at   time.Time
	text string
}

type fakeJournal struct {
	mu    sync.Mutex
	lines []journalLine
	err   error
}

func (j *fakeJournal) Append(_ context.Context, at time.Time, text string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.err != nil {
		return j.err
	}
	j.lines = append(j.lines, journalLine{at: at, text: text})
	return nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notify.Message
	err  error
}

func (n *fakeNotifier) Notify(_ context.Context, msg notify.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return n.err
}

type fakePublisher struct {
	mu     sync.Mutex
	frames []telemetry.Frame
	err    error
	closed bool
}

func (p *fakePublisher) Publish(_ context.Context, f telemetry.Frame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames = append(p.frames, f)
	return p.err
}

func (p *fakePublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

type monitorFixture struct {
	board     *hardware.SimulatedBoard
	display   *recordingDisplay
	states    *stateRepoStub
	events    *fakeEventRepo
	journal   *fakeJournal
	notifier  *fakeNotifier
	publisher *fakePublisher
	svc       *MonitorService
}

var testAlert = notify.Message{Subject: "Coal Mine Emergency", Body: "An emergency has been triggered in the coal mine."}

func newMonitorFixture(sensor hardware.SensorReader) *monitorFixture {
	f := &monitorFixture{
		display:   &recordingDisplay{},
		states:    &stateRepoStub{},
		events:    &fakeEventRepo{},
		journal:   &fakeJournal{},
		notifier:  &fakeNotifier{},
		publisher: &fakePublisher{},
	}
	f.board = hardware.NewSimulatedBoard(sensor, f.display, nil)
	repos := &repository.Repository{StateRepo: f.states, EventRepo: f.events, Journal: f.journal}
	f.svc = NewMonitorService(repos, Deps{
		Board:     f.board,
		Notifier:  f.notifier,
		Publisher: f.publisher,
		Settings: MonitorSettings{
			DeviceID:     "panel-test",
			KitsLocation: "Near Exit B",
			Thresholds:   models.DefaultThresholds(),
			Alert:        testAlert,
		},
	})
	return f
}

var stepTime = time.Date(2025, time.June, 3, 14, 5, 9, 0, time.UTC)

func TestMonitorService_Step_Nominal(t *testing.T) {
	t.Parallel()

	f := newMonitorFixture(hardware.Snapshots(nominal()))
	v, err := f.svc.Step(context.Background(), stepTime)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if v.Triggered {
		t.Fatalf("nominal snapshot triggered: %+v", v)
	}

	want := models.Indicators{GreenLED: true}
	if got := f.board.Indicators(); got != want {
		t.Fatalf("indicators: want %+v, got %+v", want, got)
	}
	last := f.display.lastShown()
	if last.color != models.ColorGreen || !strings.Contains(last.text, "Emergency Kits: Near Exit B") {
		t.Fatalf("status block not shown in green: %+v", last)
	}
	if len(f.journal.lines) != 0 || len(f.notifier.sent) != 0 || len(f.events.appended) != 0 {
		t.Fatalf("nominal step must not journal, notify or index")
	}
	st := f.states.last()
	if !st.Activated || st.Iteration != 1 || st.Snapshot == nil || st.Snapshot.AirQuality != 50 {
		t.Fatalf("unexpected saved state: %+v", st)
	}
	if len(f.publisher.frames) != 1 || f.publisher.frames[0].DeviceID != "panel-test" {
		t.Fatalf("telemetry frames: %+v", f.publisher.frames)
	}
}

func TestMonitorService_Step_Emergency(t *testing.T) {
	t.Parallel()

	snap := nominal()
	snap.TemperatureC = 35
	snap.AirQuality = 250
	f := newMonitorFixture(hardware.Snapshots(snap))

	v, err := f.svc.Step(context.Background(), stepTime)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !v.Triggered || v.Primary() != models.ReasonTemperature {
		t.Fatalf("verdict: %+v", v)
	}

	want := models.Indicators{RedLED: true, Buzzer: true}
	if got := f.board.Indicators(); got != want {
		t.Fatalf("indicators: want %+v, got %+v", want, got)
	}

	texts := f.display.texts()
	if len(texts) < 3 || texts[len(texts)-2] != MsgEvacuate || texts[len(texts)-1] != "High Temperature Detected" {
		t.Fatalf("display sequence: %q", texts)
	}
	if last := f.display.lastShown(); last.color != models.ColorRed {
		t.Fatalf("reason must be shown in red, got %+v", last.color)
	}

	if len(f.journal.lines) != 1 || f.journal.lines[0].text != JournalEmergency || !f.journal.lines[0].at.Equal(stepTime) {
		t.Fatalf("journal: %+v", f.journal.lines)
	}
	if len(f.notifier.sent) != 1 || f.notifier.sent[0] != testAlert {
		t.Fatalf("notifications: %+v", f.notifier.sent)
	}
	if got := f.events.types(); len(got) != 1 || got[0] != models.EventEmergency {
		t.Fatalf("events: %v", got)
	}
	if st := f.states.last(); st.DisplayText != "High Temperature Detected" {
		t.Fatalf("state display: %q", st.DisplayText)
	}
}

func TestMonitorService_Step_LightingRelay(t *testing.T) {
	t.Parallel()

	dark := nominal()
	dark.LightIntensity = 40
	f := newMonitorFixture(hardware.Snapshots(dark))
	if _, err := f.svc.Step(context.Background(), stepTime); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !f.board.Indicators().Lighting {
		t.Fatalf("lighting relay should be on below the light threshold")
	}
	if !strings.Contains(f.display.lastShown().text, "Automatic Lighting: ON") {
		t.Fatalf("status block: %q", f.display.lastShown().text)
	}
}

func TestMonitorService_Step_NotifyFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	snap := nominal()
	snap.SoundLevel = 90
	f := newMonitorFixture(hardware.Snapshots(snap, snap))
	f.notifier.err = errors.New("smtp: connection refused")

	for i := 0; i < 2; i++ {
		v, err := f.svc.Step(context.Background(), stepTime.Add(time.Duration(i)*time.Second))
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if v.Primary() != models.ReasonSound {
			t.Fatalf("step %d verdict: %+v", i, v)
		}
	}

	// every triggered iteration notifies once, without retry
	if len(f.notifier.sent) != 2 {
		t.Fatalf("notify attempts: want 2, got %d", len(f.notifier.sent))
	}
	if len(f.journal.lines) != 2 {
		t.Fatalf("journal lines: want 2, got %d", len(f.journal.lines))
	}
	want := []string{models.EventEmergency, models.EventNotifyFailed, models.EventEmergency, models.EventNotifyFailed}
	got := f.events.types()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("events: want %v, got %v", want, got)
	}
}

func TestMonitorService_Step_BestEffortSinks(t *testing.T) {
	t.Parallel()

	snap := nominal()
	snap.DistanceCm = 10
	f := newMonitorFixture(hardware.Snapshots(snap))
	f.publisher.err = errors.New("broker down")
	f.events.appendErr = errors.New("disk full")
	f.states.saveErr = errors.New("nope")

	if _, err := f.svc.Step(context.Background(), stepTime); err != nil {
		t.Fatalf("telemetry, index and state failures must not fail the step: %v", err)
	}
}

func TestMonitorService_Step_JournalFailure(t *testing.T) {
	t.Parallel()

	snap := nominal()
	snap.AirQuality = 300
	f := newMonitorFixture(hardware.Snapshots(snap))
	f.journal.err = errors.New("read-only file system")

	if _, err := f.svc.Step(context.Background(), stepTime); !errors.Is(err, f.journal.err) {
		t.Fatalf("expected journal error, got %v", err)
	}
}

func TestMonitorService_Step_SensorError(t *testing.T) {
	t.Parallel()

	readErr := errors.New("i2c timeout")
	f := newMonitorFixture(hardware.NewScriptedSensor(hardware.ScriptedStep{Err: readErr}))

	if _, err := f.svc.Step(context.Background(), stepTime); !errors.Is(err, readErr) {
		t.Fatalf("expected sensor error, got %v", err)
	}
	if got := f.events.types(); len(got) != 1 || got[0] != models.EventSensorError {
		t.Fatalf("events: %v", got)
	}
	if len(f.states.saved) != 0 {
		t.Fatalf("failed step must not save state")
	}
}

func TestMonitorService_Run(t *testing.T) {
	t.Parallel()

	t.Run("sensor failure ends run", func(t *testing.T) {
		t.Parallel()
		f := newMonitorFixture(hardware.Snapshots(nominal(), nominal()))

		err := f.svc.Run(context.Background(), time.Millisecond)
		if !errors.Is(err, hardware.ErrScriptExhausted) {
			t.Fatalf("expected ErrScriptExhausted, got %v", err)
		}
		if st := f.states.last(); st.Iteration != 2 {
			t.Fatalf("iterations before failure: want 2, got %d", st.Iteration)
		}
	})

	t.Run("cancellation returns nil", func(t *testing.T) {
		t.Parallel()
		f := newMonitorFixture(hardware.NewSimulatedSensors(1, 0))
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()

		if err := f.svc.Run(ctx, 5*time.Millisecond); err != nil {
			t.Fatalf("Run: %v", err)
		}
		if st := f.states.last(); st.Iteration < 1 {
			t.Fatalf("expected at least one iteration, got %d", st.Iteration)
		}
	})
}

func TestMonitorService_WaitForActivation(t *testing.T) {
	t.Parallel()

	f := newMonitorFixture(hardware.Snapshots())
	done := make(chan error, 1)
	go func() { done <- f.svc.WaitForActivation(context.Background()) }()

	f.board.Press()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("WaitForActivation: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("WaitForActivation did not return after press")
	}

	want := []string{MsgBanner, MsgPressButton, MsgActivated}
	if got := f.display.texts(); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("display: want %q, got %q", want, got)
	}
	if st := f.states.last(); !st.Activated {
		t.Fatalf("state not activated: %+v", st)
	}
	if got := f.events.types(); len(got) != 1 || got[0] != models.EventActivated {
		t.Fatalf("events: %v", got)
	}
}

func TestMonitorService_WaitForActivation_Cancelled(t *testing.T) {
	t.Parallel()

	f := newMonitorFixture(hardware.Snapshots())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := f.svc.WaitForActivation(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if len(f.events.appended) != 0 {
		t.Fatalf("no event expected without activation")
	}
}

func TestMonitorService_Shutdown(t *testing.T) {
	t.Parallel()

	snap := nominal()
	snap.TemperatureC = 40
	snap.LightIntensity = 10
	f := newMonitorFixture(hardware.Snapshots(snap))
	if _, err := f.svc.Step(context.Background(), stepTime); err != nil {
		t.Fatalf("Step: %v", err)
	}

	if err := f.svc.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if got := f.board.Indicators(); got != (models.Indicators{}) {
		t.Fatalf("actuators still on: %+v", got)
	}
	if f.display.backlight != models.ColorOff {
		t.Fatalf("backlight: %+v", f.display.backlight)
	}
	texts := f.display.texts()
	if texts[len(texts)-1] != MsgStopped {
		t.Fatalf("last text: %q", texts[len(texts)-1])
	}
	if !f.publisher.closed {
		t.Fatalf("publisher not closed")
	}
	got := f.events.types()
	if got[len(got)-1] != models.EventShutdown {
		t.Fatalf("events: %v", got)
	}
	if st := f.states.last(); st.Activated || st.Iteration != 1 {
		t.Fatalf("state after shutdown: %+v", st)
	}
}
