// Package job provides background job processing using asynq.
//
// asynq is a Redis-backed job queue: tasks are enqueued through
// asynq.Client and executed by workers run by asynq.Server.
package job

import (
	"github.com/avelune/formgate/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService holds the asynq client (enqueue side) and server
// (worker side).
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	server *asynq.Server
	logger *zerolog.Logger

	// notifyEmail is where form-received notifications go.
	notifyEmail string
}

// NewJobService creates a JobService backed by the Redis instance
// from config.
//
// Queue weights give notification-critical work more worker share:
// out of 10 concurrent workers roughly 6 serve critical, 3 default,
// 1 low.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client:      client,
		server:      server,
		logger:      logger,
		notifyEmail: cfg.Integration.NotifyEmail,
	}
}

// Start registers task handlers and starts the background worker
// server. asynq's Start is non-blocking; workers run until Stop.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()

	mux.HandleFunc(TaskFormReceived, j.handleFormReceivedTask)

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// Stop gracefully stops the job server and closes client resources.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}
