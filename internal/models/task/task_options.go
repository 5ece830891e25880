package task

type TaskOption func(*Task)

// WithTitle overwrites the title, nil included.
func WithTitle(title *string) TaskOption {
	return func(task *Task) {
		task.Title = cloneString(title)
	}
}

// WithColumnName overwrites the column label, nil included.
func WithColumnName(columnName *string) TaskOption {
	return func(task *Task) {
		task.ColumnName = cloneString(columnName)
	}
}

func (t *Task) Apply(options ...TaskOption) {
	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}
}
