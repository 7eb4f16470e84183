package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avelune/formgate/internal/config"
	"github.com/avelune/formgate/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// emailClient is shared by job handlers. InitHandlers must run before
// the worker server starts so handlers never see it nil.
var emailClient *email.Client

// InitHandlers initializes dependencies required by job handlers.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	emailClient = email.NewClient(cfg, logger)
}

// handleFormReceivedTask processes the form-received notification:
// decode the payload and send the owner email. Returning an error
// makes asynq mark the task failed and schedule a retry.
func (j *JobService) handleFormReceivedTask(ctx context.Context, t *asynq.Task) error {
	var p FormReceivedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal form-received payload: %w", err)
	}

	j.logger.Info().
		Str("type", "form_received").
		Int64("entry_id", p.EntryID).
		Msg("Processing form-received notification task")

	err := emailClient.SendFormReceivedEmail(j.notifyEmail, p.EntryID, p.CustomerID, p.Comment)
	if err != nil {
		j.logger.Error().
			Str("type", "form_received").
			Int64("entry_id", p.EntryID).
			Err(err).
			Msg("Failed to send form-received notification")
		return err
	}

	j.logger.Info().
		Str("type", "form_received").
		Int64("entry_id", p.EntryID).
		Msg("Successfully sent form-received notification")

	return nil
}
