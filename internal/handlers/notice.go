package handlers

import (
	"context"

	"github.com/gdg-garage/diet-forms/internal/notifier"
)

type NoticeHandler struct {
	current *notifier.CurrentSink
}

func NewNoticeHandler(current *notifier.CurrentSink) *NoticeHandler {
	return &NoticeHandler{current: current}
}

type NoticeOutput struct {
	Body struct {
		Notice *notifier.Notice `json:"notice" doc:"The notice visible right now, null when none"`
	}
}

func (h *NoticeHandler) HandleCurrent(ctx context.Context, input *struct{}) (*NoticeOutput, error) {
	res := &NoticeOutput{}
	if n, ok := h.current.Current(); ok {
		res.Body.Notice = &n
	}
	return res, nil
}
