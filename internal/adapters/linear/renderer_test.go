package linear_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"go.trai.ch/courseware/internal/adapters/linear"
	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestRenderer_WatchLifecycle(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	r.OnSnapshot("courses", 12, 1, false)
	r.OnSnapshot("categories", 3, 4, true)
	r.OnChange("courses", 13, 2, time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC))
	r.OnLiveUpdate(domain.LiveUpdate{
		Kind:     domain.UpdateCreated,
		Resource: "category",
		Data:     json.RawMessage(`{"_id":"c9","name":"Security"}`),
	})
	r.OnLiveUpdate(domain.LiveUpdate{Kind: domain.UpdateDeleted})

	if err := r.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if err := r.Wait(); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	g := goldie.New(t)
	g.Assert(t, "watch_stdout", stdout.Bytes())

	if !strings.Contains(stderr.String(), "Stopped watching 2 collection(s)") {
		t.Errorf("Expected summary in stderr, got: %s", stderr.String())
	}
}

func TestRenderer_OnRequest(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	r.OnRequest("api GET /courses", 12*time.Millisecond+300*time.Microsecond, nil)
	r.OnRequest("api POST /category", 40*time.Millisecond, zerr.New("request failed"))

	got := stderr.String()
	if !strings.Contains(got, "[api GET /courses] ✓ Completed in 12ms") {
		t.Errorf("Expected completion line, got: %s", got)
	}
	if !strings.Contains(got, "[api POST /category] ✗ Failed after 40ms: request failed") {
		t.Errorf("Expected failure line, got: %s", got)
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected no stdout output, got: %s", stdout.String())
	}
}

func TestRenderer_StopWithoutSnapshots(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	if err := r.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if stderr.Len() != 0 {
		t.Errorf("Expected no summary, got: %s", stderr.String())
	}
}

func TestRenderer_LiveUpdateWithoutID(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var stdout bytes.Buffer
	r := linear.NewRenderer(&stdout, &bytes.Buffer{})

	r.OnLiveUpdate(domain.LiveUpdate{Kind: domain.UpdateUpdated, Resource: "client", Data: json.RawMessage(`[1,2]`)})

	if got := stdout.String(); got != "[client] live updated\n" {
		t.Errorf("unexpected line: %q", got)
	}
}

func TestNewRenderer_DefaultsWriters(t *testing.T) {
	if r := linear.NewRenderer(nil, nil); r == nil {
		t.Fatal("Expected non-nil renderer")
	}
}

func TestRenderer_WaitReturnsAfterStop(t *testing.T) {
	var stderr bytes.Buffer
	r := linear.NewRenderer(&bytes.Buffer{}, &stderr)
	r.OnSnapshot("courses", 1, 1, false)

	done := make(chan error, 1)
	go func() { done <- r.Wait() }()

	select {
	case <-done:
		t.Fatal("Wait returned before Stop")
	case <-time.After(20 * time.Millisecond):
	}

	if err := r.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if err := r.Stop(); err != nil {
		t.Fatalf("second Stop() error = %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if got := strings.Count(stderr.String(), "Stopped watching"); got != 1 {
		t.Errorf("expected one summary, got %d", got)
	}
}
