package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/medicore/hospital-system/internal/api/metrics"
	"github.com/medicore/hospital-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes appointment reminders to a fixed set of workers using
// consistent hashing on the patient ID, guaranteeing per-patient ordering.
type Dispatcher struct {
	workers []chan ports.ReminderInput
	service ports.NotificationService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.NotificationService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ReminderInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ReminderInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a reminder to the worker responsible for its patient.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(in ports.ReminderInput) {
	idx := d.shardIndex(in.PatientID)
	d.workers[idx] <- in
	metrics.ReminderQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a patient ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(patientID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(patientID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ReminderInput) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Process(ctx, in); err != nil {
				d.log.Error().Err(err).
					Str("appointment_id", in.AppointmentID).
					Int("worker_id", id).
					Msg("reminder processing failed")
			} else {
				metrics.RemindersProcessedTotal.WithLabelValues(in.Kind).Inc()
			}
			metrics.ReminderQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
		}
	}
}
