package handlers

import (
	"cmp"
	"context"
	"slices"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/diet-forms/internal/diets"
	"github.com/gdg-garage/diet-forms/internal/models"
	"github.com/gdg-garage/diet-forms/internal/session"
)

type DietHandler struct {
	sessions *session.Registry
	diets    *diets.Service
}

func NewDietHandler(sessions *session.Registry, dietService *diets.Service) *DietHandler {
	return &DietHandler{sessions: sessions, diets: dietService}
}

const (
	SortByDate  = "date"
	SortBySaved = "saved"
)

type ListDietsInput struct {
	Sort string `query:"sort" enum:"date,saved" default:"date" doc:"date sorts by diet date, saved by last save, newest first"`
}

type ListDietsOutput struct {
	Body []models.Diet
}

func (h *DietHandler) HandleList(ctx context.Context, input *ListDietsInput) (*ListDietsOutput, error) {
	if _, err := currentSession(ctx, h.sessions); err != nil {
		return nil, err
	}

	var (
		all []models.Diet
		err error
	)
	if input.Sort == SortBySaved {
		all, err = h.diets.Recent(ctx)
	} else {
		all, err = h.diets.Enumerate(ctx)
		sortByDate(all)
	}
	if err != nil {
		return nil, storeError(err, "Failed to list diets")
	}
	if all == nil {
		all = []models.Diet{}
	}
	return &ListDietsOutput{Body: all}, nil
}

// sortByDate orders diets newest date first, then by id.
func sortByDate(all []models.Diet) {
	slices.SortFunc(all, func(a, b models.Diet) int {
		if c := cmp.Compare(b.Date, a.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

type DietIDInput struct {
	ID string `path:"id"`
}

type DietOutput struct {
	Body models.Diet
}

func (h *DietHandler) HandleGet(ctx context.Context, input *DietIDInput) (*DietOutput, error) {
	if _, err := currentSession(ctx, h.sessions); err != nil {
		return nil, err
	}

	diet, found, err := h.diets.Get(ctx, input.ID)
	if err != nil {
		return nil, storeError(err, "Failed to read the diet")
	}
	if !found {
		return nil, huma.Error404NotFound("Diet not found")
	}
	return &DietOutput{Body: diet}, nil
}

// pickerView collects what the record picker should show after a removal.
type pickerView struct {
	remaining []models.Diet
	closed    bool
}

func (v *pickerView) Refresh(remaining []models.Diet) {
	v.remaining = remaining
}

func (v *pickerView) ClosePicker() {
	v.closed = true
}

type RemovalOutput struct {
	Body struct {
		Remaining   []models.Diet `json:"remaining"`
		ClosePicker bool          `json:"closePicker" doc:"True once no diets are left to pick from"`
	}
}

func removalOutput(view *pickerView) *RemovalOutput {
	res := &RemovalOutput{}
	res.Body.Remaining = view.remaining
	if res.Body.Remaining == nil {
		res.Body.Remaining = []models.Diet{}
	}
	sortByDate(res.Body.Remaining)
	res.Body.ClosePicker = view.closed
	return res
}

func (h *DietHandler) HandleDelete(ctx context.Context, input *DietIDInput) (*RemovalOutput, error) {
	if _, err := currentSession(ctx, h.sessions); err != nil {
		return nil, err
	}

	view := &pickerView{}
	if err := h.diets.Delete(ctx, input.ID, view); err != nil {
		return nil, storeError(err, "Failed to delete the diet")
	}
	return removalOutput(view), nil
}

func (h *DietHandler) HandleClear(ctx context.Context, input *struct{}) (*RemovalOutput, error) {
	if _, err := currentSession(ctx, h.sessions); err != nil {
		return nil, err
	}

	view := &pickerView{}
	if err := h.diets.Clear(ctx, view); err != nil {
		return nil, storeError(err, "Failed to delete the diets")
	}
	return removalOutput(view), nil
}
