package worker

// notice_worker.go
// Processes cheque notice jobs from QueueNotice: looks up the managing
// employee and mails them when one of their customers' cheques bounces.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/gateway"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/infra"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// NoticeWorker processes cheque notice jobs.
type NoticeWorker struct {
	mailer    *infra.Mailer
	employees gateway.EmployeeGateway
}

func NewNoticeWorker(mailer *infra.Mailer, employees gateway.EmployeeGateway) *NoticeWorker {
	return &NoticeWorker{mailer: mailer, employees: employees}
}

// Process sends the notice email. A returned error requeues the job; jobs
// with no deliverable address are dropped, not retried.
func (w *NoticeWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ChequeNoticePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("notice_worker: invalid payload")
		return nil
	}

	managerID, err := uuid.Parse(payload.ManagerID)
	if err != nil {
		log.Error().Str("manager_id", payload.ManagerID).Msg("notice_worker: invalid manager id")
		return nil
	}

	employee, err := w.employees.FindByID(ctx, managerID)
	if err != nil {
		return fmt.Errorf("notice_worker: resolve employee: %w", err)
	}
	if employee.Email == nil || *employee.Email == "" {
		log.Warn().Str("manager_id", payload.ManagerID).Msg("notice_worker: employee has no email — skipping")
		return nil
	}

	subject := fmt.Sprintf("Cheque %s %s", payload.Number, payload.Status)
	body := fmt.Sprintf(
		"Cheque %s changed to status %q.\n\nComment: %s\n\nCheque id: %s\n",
		payload.Number, payload.Status, payload.Comment, payload.ChequeID,
	)
	if err := w.mailer.SendNotice(*employee.Email, subject, body, ""); err != nil {
		return fmt.Errorf("notice_worker: send: %w", err)
	}

	log.Info().Str("to", *employee.Email).Str("cheque", payload.Number).Msg("notice_worker: notice sent")
	return nil
}
