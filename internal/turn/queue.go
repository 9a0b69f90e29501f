package turn

// Queue is a FIFO of tasks waiting to run.
type Queue struct {
	tasks []*Task
}

func (q *Queue) Push(t *Task) {
	q.tasks = append(q.tasks, t)
}

// Pop removes and returns the head of the queue, or nil when empty.
func (q *Queue) Pop() *Task {
	if len(q.tasks) == 0 {
		return nil
	}
	t := q.tasks[0]
	q.tasks[0] = nil
	q.tasks = q.tasks[1:]
	return t
}

func (q *Queue) Len() int {
	return len(q.tasks)
}

func (q *Queue) Empty() bool {
	return len(q.tasks) == 0
}

// Producers lists the producer of every pending task in order.
func (q *Queue) Producers() []string {
	out := make([]string, len(q.tasks))
	for i, t := range q.tasks {
		out[i] = t.Producer
	}
	return out
}
