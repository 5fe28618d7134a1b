// Package orchestrator runs commands concurrently while respecting task
// dependencies and per-resource concurrency limits.
package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	"ved/command"
	"ved/models"
)

// ErrDependencyFailed marks a task skipped because a dependency failed.
var ErrDependencyFailed = errors.New("dependency failed")

// ResourceType names a pool of execution slots.
type ResourceType string

const (
	ResourceEncode ResourceType = "encode" // ffmpeg processes
	ResourceIO     ResourceType = "io"     // file copies and moves
)

// Task is a unit of work with dependencies and a resource requirement.
type Task struct {
	ID           string
	Command      command.Command
	Dependencies []string // IDs of tasks that must complete before this one
	Resource     ResourceType
	Status       TaskStatus
	Error        error
	Result       *models.Result
	StartTime    time.Time
	EndTime      time.Time

	seq int
}

// TaskStatus is the state of a task.
type TaskStatus int

const (
	TaskPending TaskStatus = iota
	TaskRunning
	TaskCompleted
	TaskFailed
)

func (s TaskStatus) String() string {
	switch s {
	case TaskPending:
		return "pending"
	case TaskRunning:
		return "running"
	case TaskCompleted:
		return "completed"
	case TaskFailed:
		return "failed"
	}
	return fmt.Sprintf("TaskStatus(%d)", int(s))
}

// ResourceConstraint limits how many tasks of a resource run at once.
type ResourceConstraint struct {
	Type     ResourceType
	MaxSlots int
}

// Stats counts tasks by status.
type Stats struct {
	Total     int
	Pending   int
	Running   int
	Completed int
	Failed    int
}

// DAGOrchestrator executes tasks respecting dependencies and resource limits.
// Resources without a constraint are unlimited.
type DAGOrchestrator struct {
	logger      hclog.Logger
	tasks       map[string]*Task
	order       []*Task
	constraints map[ResourceType]int

	tasksMutex sync.RWMutex

	onProgress func(completed, total int, task *Task)
}

// NewDAGOrchestrator creates an orchestrator with the given constraints.
func NewDAGOrchestrator(logger hclog.Logger, constraints ...ResourceConstraint) *DAGOrchestrator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	constraintMap := make(map[ResourceType]int, len(constraints))
	for _, c := range constraints {
		constraintMap[c.Type] = c.MaxSlots
	}

	return &DAGOrchestrator{
		logger:      logger.Named("orchestrator"),
		tasks:       make(map[string]*Task),
		constraints: constraintMap,
	}
}

// NewWorkerPool creates an orchestrator running at most workers ffmpeg
// processes and one file operation at a time.
func NewWorkerPool(logger hclog.Logger, workers int) *DAGOrchestrator {
	return NewDAGOrchestrator(logger,
		ResourceConstraint{Type: ResourceEncode, MaxSlots: workers},
		ResourceConstraint{Type: ResourceIO, MaxSlots: 1},
	)
}

// AddTask registers a task. IDs must be unique.
func (o *DAGOrchestrator) AddTask(task *Task) error {
	if task == nil || task.Command == nil {
		return errors.New("task and its command cannot be nil")
	}
	if task.ID == "" {
		return errors.New("task ID cannot be empty")
	}

	o.tasksMutex.Lock()
	defer o.tasksMutex.Unlock()

	if _, exists := o.tasks[task.ID]; exists {
		return errors.Errorf("task %s already exists", task.ID)
	}

	if task.Resource == "" {
		task.Resource = resourceFor(task.Command)
	}
	task.Status = TaskPending
	task.seq = len(o.order)
	o.tasks[task.ID] = task
	o.order = append(o.order, task)
	return nil
}

// Add registers cmd under id with no dependencies.
func (o *DAGOrchestrator) Add(id string, cmd command.Command) error {
	return o.AddTask(&Task{ID: id, Command: cmd})
}

// SetProgressCallback sets a callback invoked after each task finishes.
func (o *DAGOrchestrator) SetProgressCallback(callback func(completed, total int, task *Task)) {
	o.onProgress = callback
}

// Execute runs every task and returns their results in insertion order.
//
// A failed task does not stop independent tasks; tasks depending on it fail
// with ErrDependencyFailed. When ctx is cancelled no further tasks start,
// running commands receive the cancellation, and Execute returns ctx.Err()
// alongside the results gathered so far.
func (o *DAGOrchestrator) Execute(ctx context.Context) ([]*models.Result, error) {
	if err := o.validateDAG(); err != nil {
		return nil, err
	}

	for resource, slots := range o.constraints {
		if slots < 1 {
			return nil, errors.Errorf("resource %s must allow at least one slot, got %d", resource, slots)
		}
	}

	total := len(o.order)
	completeCh := make(chan *Task, total)
	active := make(map[ResourceType]int)
	running, finished := 0, 0
	done := ctx.Done()

	finish := func(task *Task) {
		finished++
		o.logger.Debug("task finished", "id", task.ID, "status", task.Status, "elapsed", task.EndTime.Sub(task.StartTime))
		if o.onProgress != nil {
			o.onProgress(finished, total, task)
		}
	}

	for finished < total {
		if ctx.Err() == nil {
			for _, task := range o.readyTasks() {
				if !o.tryAcquire(active, task.Resource) {
					continue
				}
				running++
				o.start(ctx, task, completeCh)
			}
		}

		for _, task := range o.skipBlocked(ctx.Err()) {
			finish(task)
		}
		if finished == total {
			break
		}

		if running == 0 {
			// unreachable for a validated DAG with positive slot counts
			return o.results(), errors.New("no runnable tasks left")
		}

		select {
		case task := <-completeCh:
			running--
			active[task.Resource]--
			finish(task)
		case <-done:
			o.logger.Debug("cancelled, waiting for running tasks", "running", running)
			done = nil
		}
	}

	return o.results(), ctx.Err()
}

func (o *DAGOrchestrator) start(ctx context.Context, task *Task, completeCh chan<- *Task) {
	o.tasksMutex.Lock()
	task.Status = TaskRunning
	task.StartTime = time.Now()
	o.tasksMutex.Unlock()

	o.logger.Debug("task started", "id", task.ID, "type", task.Command.GetTaskType(), "resource", task.Resource)

	go func() {
		err := task.Command.Run(ctx)

		o.tasksMutex.Lock()
		task.EndTime = time.Now()
		o.complete(task, err)
		o.tasksMutex.Unlock()

		completeCh <- task
	}()
}

// complete records the outcome of task. Callers hold tasksMutex.
func (o *DAGOrchestrator) complete(task *Task, err error) {
	output := task.Command.GetOutputPath()
	if err == nil {
		result, resultErr := models.NewResultSuccess(task.ID, output)
		if resultErr == nil {
			task.Status = TaskCompleted
			task.Result = result
			return
		}
		err = resultErr
	}
	task.Status = TaskFailed
	task.Error = err
	task.Result, _ = models.NewResultFailure(task.ID, output, err)
}

// readyTasks returns pending tasks whose dependencies completed, highest
// priority first, then in insertion order.
func (o *DAGOrchestrator) readyTasks() []*Task {
	o.tasksMutex.RLock()
	defer o.tasksMutex.RUnlock()

	var ready []*Task
	for _, task := range o.order {
		if task.Status == TaskPending && o.dependenciesMet(task) {
			ready = append(ready, task)
		}
	}

	sort.SliceStable(ready, func(i, j int) bool {
		return ready[i].Command.GetPriority() > ready[j].Command.GetPriority()
	})
	return ready
}

// skipBlocked fails pending tasks that can never run: those with a failed
// dependency, and every pending task once cancelErr is set.
func (o *DAGOrchestrator) skipBlocked(cancelErr error) []*Task {
	o.tasksMutex.Lock()
	defer o.tasksMutex.Unlock()

	var skipped []*Task
	for changed := true; changed; {
		changed = false
		for _, task := range o.order {
			if task.Status != TaskPending {
				continue
			}

			var err error
			switch {
			case o.hasFailedDependency(task):
				err = errors.Wrapf(ErrDependencyFailed, "task %s", task.ID)
			case cancelErr != nil:
				err = errors.Wrapf(cancelErr, "task %s not started", task.ID)
			default:
				continue
			}

			now := time.Now()
			task.StartTime, task.EndTime = now, now
			o.complete(task, err)
			skipped = append(skipped, task)
			changed = true
		}
	}
	return skipped
}

func (o *DAGOrchestrator) tryAcquire(active map[ResourceType]int, resource ResourceType) bool {
	limit, constrained := o.constraints[resource]
	if constrained && active[resource] >= limit {
		return false
	}
	active[resource]++
	return true
}

// dependenciesMet reports whether every dependency completed. Callers hold tasksMutex.
func (o *DAGOrchestrator) dependenciesMet(task *Task) bool {
	for _, depID := range task.Dependencies {
		if o.tasks[depID].Status != TaskCompleted {
			return false
		}
	}
	return true
}

// hasFailedDependency reports whether a direct dependency failed. Failures
// propagate transitively as skipBlocked repeats. Callers hold tasksMutex.
func (o *DAGOrchestrator) hasFailedDependency(task *Task) bool {
	for _, depID := range task.Dependencies {
		if o.tasks[depID].Status == TaskFailed {
			return true
		}
	}
	return false
}

func (o *DAGOrchestrator) results() []*models.Result {
	o.tasksMutex.RLock()
	defer o.tasksMutex.RUnlock()

	results := make([]*models.Result, 0, len(o.order))
	for _, task := range o.order {
		if task.Result != nil {
			results = append(results, task.Result)
		}
	}
	return results
}

// validateDAG checks that every dependency exists and there are no cycles.
func (o *DAGOrchestrator) validateDAG() error {
	o.tasksMutex.RLock()
	defer o.tasksMutex.RUnlock()

	for _, task := range o.order {
		for _, depID := range task.Dependencies {
			if _, exists := o.tasks[depID]; !exists {
				return errors.Errorf("task %s depends on non-existent task %s", task.ID, depID)
			}
		}
	}

	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	var hasCycle func(taskID string) bool
	hasCycle = func(taskID string) bool {
		visited[taskID] = true
		recStack[taskID] = true

		for _, depID := range o.tasks[taskID].Dependencies {
			if !visited[depID] {
				if hasCycle(depID) {
					return true
				}
			} else if recStack[depID] {
				return true
			}
		}

		recStack[taskID] = false
		return false
	}

	for _, task := range o.order {
		if !visited[task.ID] && hasCycle(task.ID) {
			return errors.New("cycle detected in task dependencies")
		}
	}

	return nil
}

// GetStats returns task counts by status.
func (o *DAGOrchestrator) GetStats() Stats {
	o.tasksMutex.RLock()
	defer o.tasksMutex.RUnlock()

	stats := Stats{Total: len(o.order)}
	for _, task := range o.order {
		switch task.Status {
		case TaskPending:
			stats.Pending++
		case TaskRunning:
			stats.Running++
		case TaskCompleted:
			stats.Completed++
		case TaskFailed:
			stats.Failed++
		}
	}
	return stats
}

func resourceFor(cmd command.Command) ResourceType {
	switch cmd.GetTaskType() {
	case command.TaskTypeCopy, command.TaskTypeMove:
		return ResourceIO
	default:
		return ResourceEncode
	}
}
