package model

import "testing"

func TestGenerationJob_Lifecycle(t *testing.T) {
	j := NewGenerationJob("task-1")
	if j.State != JobSubmitted || j.Terminal() {
		t.Fatalf("fresh job: state=%s terminal=%v", j.State, j.Terminal())
	}

	j.Complete("https://up.example/img.png")
	if j.State != JobDone || !j.Terminal() {
		t.Errorf("after Complete: state=%s terminal=%v", j.State, j.Terminal())
	}
	if j.SourceURL != "https://up.example/img.png" {
		t.Errorf("SourceURL = %q", j.SourceURL)
	}
}

func TestGenerationJob_TerminalStates(t *testing.T) {
	fail := NewGenerationJob("t")
	fail.Fail()
	if fail.State != JobFailed || !fail.Terminal() {
		t.Errorf("after Fail: state=%s", fail.State)
	}

	timeout := NewGenerationJob("t")
	timeout.TimeOut()
	if timeout.State != JobTimedOut || !timeout.Terminal() {
		t.Errorf("after TimeOut: state=%s", timeout.State)
	}
}

func TestArtifact_URLPreference(t *testing.T) {
	rehosted := &Artifact{SourceURL: "https://up.example/a.png", SignedURL: "https://store.example/s"}
	if rehosted.URL() != "https://store.example/s" {
		t.Errorf("URL() = %q, want the signed URL", rehosted.URL())
	}
	if rehosted.Degraded() {
		t.Error("rehosted artifact reported degraded")
	}

	fallback := &Artifact{SourceURL: "https://up.example/a.png"}
	if fallback.URL() != "https://up.example/a.png" {
		t.Errorf("URL() = %q, want the source URL", fallback.URL())
	}
	if !fallback.Degraded() {
		t.Error("fallback artifact not reported degraded")
	}

	inline := &Artifact{SourceURL: "https://up.example/a.png", InlineB64: "aGk="}
	if inline.Degraded() {
		t.Error("inline artifact reported degraded")
	}
}
