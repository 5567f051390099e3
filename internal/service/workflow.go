package service

import (
	"sync"

	"github.com/cantouch/socialflow-backend/internal/common"
	"github.com/cantouch/socialflow-backend/internal/domain"
)

// WorkflowState is the generation workflow's current phase
type WorkflowState string

const (
	StateIdle       WorkflowState = "idle"
	StateRequesting WorkflowState = "requesting"
	StateSucceeded  WorkflowState = "succeeded"
	StateFailed     WorkflowState = "failed"
)

// Workflow drives one session's generation lifecycle as a tagged state:
// idle → requesting → succeeded|failed. Loading and success cannot coexist
// by construction. Credential failures are a distinguished sub-case of
// failed that raises the key-repair flow and suspends the normal error
// display. Post edits mutate a succeeded result in place without changing
// the state.
type Workflow struct {
	mu    sync.Mutex
	state WorkflowState

	form          domain.BrandInfo  // live form state
	lastSubmitted *domain.BrandInfo // source of truth once a submission succeeded

	result          domain.GeneratedContent
	errMessage      string
	needsCredential bool
}

// WorkflowSnapshot is a read-only view of the workflow for the UI
type WorkflowSnapshot struct {
	State           WorkflowState           `json:"state"`
	Result          domain.GeneratedContent `json:"result,omitempty"`
	Error           string                  `json:"error,omitempty"`
	NeedsCredential bool                    `json:"needsCredential"`
	Form            domain.BrandInfo        `json:"form"`
}

// NewWorkflow creates an idle workflow with the default form state
func NewWorkflow() *Workflow {
	return &Workflow{
		state: StateIdle,
		form:  domain.DefaultBrandInfo(),
	}
}

// BeginSubmit validates the input and enters the requesting state, clearing
// any prior result and error. Validation failures are surfaced inline and
// never reach a downstream service.
func (w *Workflow) BeginSubmit(info domain.BrandInfo) (domain.BrandInfo, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateRequesting {
		return domain.BrandInfo{}, common.ErrGenerationInFlight
	}
	if info.BrandName == "" || info.Topic == "" {
		return domain.BrandInfo{}, common.NewValidationError("please fill in at least Brand Name and Topic")
	}
	if len(info.Platforms) == 0 {
		return domain.BrandInfo{}, common.NewValidationError("please select at least one platform")
	}

	w.form = info.Clone()
	w.enterRequestingLocked()
	return info.Clone(), nil
}

// BeginRegenerate re-enters the requesting state using the last successfully
// submitted input, or the live form if none succeeded yet. Required fields
// are not re-validated: regeneration is only reachable after results were
// shown at least once.
func (w *Workflow) BeginRegenerate() (domain.BrandInfo, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateRequesting {
		return domain.BrandInfo{}, common.ErrGenerationInFlight
	}

	source := w.form
	if w.lastSubmitted != nil {
		source = *w.lastSubmitted
	}
	w.enterRequestingLocked()
	return source.Clone(), nil
}

func (w *Workflow) enterRequestingLocked() {
	w.state = StateRequesting
	w.result = nil
	w.errMessage = ""
	w.needsCredential = false
}

// Complete records a successful generation. The submitted input becomes the
// source of truth for regeneration and image prompts, and the live form
// resets to defaults.
func (w *Workflow) Complete(info domain.BrandInfo, content domain.GeneratedContent) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.state = StateSucceeded
	w.result = content
	submitted := info.Clone()
	w.lastSubmitted = &submitted
	w.form = domain.DefaultBrandInfo()
	w.errMessage = ""
	w.needsCredential = false
}

// Fail records a failed generation. The prior result set stays cleared:
// an error panel is shown rather than a partial result. Credential failures
// raise the repair flow instead of the normal error display.
func (w *Workflow) Fail(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.state = StateFailed
	w.result = nil
	if common.IsCredentialError(err) {
		w.needsCredential = true
		w.errMessage = ""
		return
	}
	w.needsCredential = false
	w.errMessage = err.Error()
}

// CredentialSaved exits the credential-repair sub-case back to idle so the
// user can resubmit. It never replays the failed request automatically.
func (w *Workflow) CredentialSaved() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.needsCredential {
		w.needsCredential = false
		w.errMessage = ""
		w.state = StateIdle
	}
}

// Snapshot returns the current state for rendering
func (w *Workflow) Snapshot() WorkflowSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	return WorkflowSnapshot{
		State:           w.state,
		Result:          w.result.Clone(),
		Error:           w.errMessage,
		NeedsCredential: w.needsCredential,
		Form:            w.form.Clone(),
	}
}

// SourceInfo returns the campaign context backing the current results:
// the last submitted input, or the live form before any success.
func (w *Workflow) SourceInfo() domain.BrandInfo {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.lastSubmitted != nil {
		return w.lastSubmitted.Clone()
	}
	return w.form.Clone()
}

// Result returns a copy of the generated content, or an error when the
// workflow holds none.
func (w *Workflow) Result() (domain.GeneratedContent, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateSucceeded || w.result == nil {
		return nil, common.ErrNoGeneratedContent
	}
	return w.result.Clone(), nil
}

// Post returns a copy of the post at index
func (w *Workflow) Post(index int) (domain.SocialPost, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateSucceeded || index < 0 || index >= len(w.result) {
		return domain.SocialPost{}, common.ErrPostNotFound
	}
	return w.result[index].Clone(), nil
}

// UpdatePost replaces the post at index with a locally edited version.
// The platform of a post is fixed; an edit cannot move it.
func (w *Workflow) UpdatePost(index int, post domain.SocialPost) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateSucceeded || index < 0 || index >= len(w.result) {
		return common.ErrPostNotFound
	}
	post.Platform = w.result[index].Platform
	w.result[index] = post.Clone()
	return nil
}

// ApplyRefinement replaces only the body of the post at index. A failed
// refinement never reaches this point, so prior content stays untouched.
func (w *Workflow) ApplyRefinement(index int, content string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateSucceeded || index < 0 || index >= len(w.result) {
		return common.ErrPostNotFound
	}
	w.result[index].Content = content
	return nil
}

// AttachImage stores an image payload on the post at index
func (w *Workflow) AttachImage(index int, dataURI string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateSucceeded || index < 0 || index >= len(w.result) {
		return common.ErrPostNotFound
	}
	w.result[index].ImageURL = dataURI
	return nil
}
