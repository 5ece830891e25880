package task

// Task is a kanban card. Every field except ID is nullable and free text.
type Task struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement" db:"id"`
	Title       *string `json:"title" db:"title"`
	Description *string `json:"description" db:"description"`
	ColumnName  *string `json:"columnName" db:"column_name"`
}

func (Task) TableName() string {
	return "tasks"
}

// Conventional column labels. They are not enforced anywhere.
const (
	ColumnToDo       = "To Do"
	ColumnInProgress = "In Progress"
	ColumnDone       = "Done"
)

// Clone returns a copy that shares no pointers with t.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	return &Task{
		ID:          t.ID,
		Title:       cloneString(t.Title),
		Description: cloneString(t.Description),
		ColumnName:  cloneString(t.ColumnName),
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
