package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

// ParseTaskStatus validates a client-supplied status value. The three
// statuses form a flat set; any of them may follow any other.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch TaskStatus(s) {
	case StatusTodo, StatusInProgress, StatusDone:
		return TaskStatus(s), true
	}
	return "", false
}

type Task struct {
	gorm.Model

	Title        string     `gorm:"not null"`
	Description  string
	Status       TaskStatus `gorm:"type:varchar(16);not null;default:TODO"`
	ProjectID    uint       `gorm:"not null;index"`
	AssignedToID *uint      `gorm:"index"`
	DueDate      *time.Time

	// Relationships
	Project    Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	AssignedTo *User   `gorm:"foreignKey:AssignedToID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
