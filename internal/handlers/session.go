package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/diet-forms/internal/auth"
	"github.com/gdg-garage/diet-forms/internal/diets"
	"github.com/gdg-garage/diet-forms/internal/form"
	"github.com/gdg-garage/diet-forms/internal/session"
)

type SessionHandler struct {
	authHandler *auth.AuthHandler
	sessions    *session.Registry
	diets       *diets.Service
}

func NewSessionHandler(authHandler *auth.AuthHandler, sessions *session.Registry, dietService *diets.Service) *SessionHandler {
	return &SessionHandler{authHandler: authHandler, sessions: sessions, diets: dietService}
}

type StateOutput struct {
	Body session.State
}

type CreateSessionOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      session.State
}

func (h *SessionHandler) HandleCreate(ctx context.Context, input *struct{}) (*CreateSessionOutput, error) {
	sess := h.sessions.Create()

	token, err := h.authHandler.GenerateToken(sess.ID)
	if err != nil {
		h.sessions.Remove(sess.ID)
		return nil, huma.Error500InternalServerError("Failed to issue session token")
	}

	return &CreateSessionOutput{
		SetCookie: *h.authHandler.Cookie(token),
		Body:      sess.State(),
	}, nil
}

func (h *SessionHandler) HandleGet(ctx context.Context, input *struct{}) (*StateOutput, error) {
	sess, err := currentSession(ctx, h.sessions)
	if err != nil {
		return nil, err
	}
	return &StateOutput{Body: sess.State()}, nil
}

type UpdateFormInput struct {
	Body form.Form
}

// HandleUpdateForm stores the snapshot pushed by the UI. The save-enabled
// flag in the response may still reflect the previous burst of input.
func (h *SessionHandler) HandleUpdateForm(ctx context.Context, input *UpdateFormInput) (*StateOutput, error) {
	sess, err := currentSession(ctx, h.sessions)
	if err != nil {
		return nil, err
	}
	sess.Update(input.Body)
	return &StateOutput{Body: sess.State()}, nil
}

type ActiveServiceInput struct {
	Body struct {
		Index int `json:"index" minimum:"0" doc:"Index of the service panel shown in the form"`
	}
}

func (h *SessionHandler) HandleSetActiveService(ctx context.Context, input *ActiveServiceInput) (*StateOutput, error) {
	sess, err := currentSession(ctx, h.sessions)
	if err != nil {
		return nil, err
	}
	if err := sess.SetActiveService(input.Body.Index); err != nil {
		return nil, huma.Error400BadRequest("Invalid service panel")
	}
	return &StateOutput{Body: sess.State()}, nil
}

type DiffOutput struct {
	Body struct {
		Changed bool   `json:"changed"`
		Diff    string `json:"diff" doc:"Unified diff of the baseline against the current form"`
	}
}

func (h *SessionHandler) HandleDiff(ctx context.Context, input *struct{}) (*DiffOutput, error) {
	sess, err := currentSession(ctx, h.sessions)
	if err != nil {
		return nil, err
	}
	res := &DiffOutput{}
	res.Body.Diff = sess.Diff()
	res.Body.Changed = res.Body.Diff != ""
	return res, nil
}

func (h *SessionHandler) HandleReset(ctx context.Context, input *struct{}) (*StateOutput, error) {
	sess, err := currentSession(ctx, h.sessions)
	if err != nil {
		return nil, err
	}
	h.diets.Reset(sess)
	return &StateOutput{Body: sess.State()}, nil
}

type SaveRequest struct {
	ConfirmOverwrite *bool `json:"confirm_overwrite,omitempty" doc:"Answer to the overwrite question; omit until the question has been asked"`
}

type SaveInput struct {
	Body *SaveRequest `required:"false"`
}

type SaveOutput struct {
	Body struct {
		Outcome diets.Outcome `json:"outcome" enum:"created,overwritten,unchanged,cancelled"`
		State   session.State `json:"state"`
	}
}

func (h *SessionHandler) HandleSave(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	sess, err := currentSession(ctx, h.sessions)
	if err != nil {
		return nil, err
	}

	var answer *bool
	if input.Body != nil {
		answer = input.Body.ConfirmOverwrite
	}

	outcome, err := h.diets.Save(ctx, sess, diets.Answer(answer))
	if err != nil {
		var pending *diets.ConfirmationRequiredError
		switch {
		case errors.As(err, &pending):
			return nil, huma.Error409Conflict(pending.Message)
		case errors.Is(err, diets.ErrNotEligible):
			details := make([]error, 0, len(sess.Invalid()))
			for _, field := range sess.Invalid() {
				details = append(details, &huma.ErrorDetail{Message: "invalid value", Location: "body.form." + field})
			}
			return nil, huma.Error422UnprocessableEntity("Complete the required fields before saving", details...)
		default:
			return nil, storeError(err, "Failed to save the diet")
		}
	}

	res := &SaveOutput{}
	res.Body.Outcome = outcome
	res.Body.State = sess.State()
	return res, nil
}

type LoadInput struct {
	ID string `path:"id" doc:"Diet id, the first nine characters of the first service number"`
}

type LoadOutput struct {
	Body struct {
		Loaded bool          `json:"loaded"`
		State  session.State `json:"state"`
	}
}

// HandleLoad leaves the form untouched when the id is unknown.
func (h *SessionHandler) HandleLoad(ctx context.Context, input *LoadInput) (*LoadOutput, error) {
	sess, err := currentSession(ctx, h.sessions)
	if err != nil {
		return nil, err
	}

	loaded, err := h.diets.LoadIntoForm(ctx, sess, input.ID)
	if err != nil {
		return nil, storeError(err, "Failed to load the diet")
	}

	res := &LoadOutput{}
	res.Body.Loaded = loaded
	res.Body.State = sess.State()
	return res, nil
}
